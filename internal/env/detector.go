package env

// detect is the collision/success detector: a pure function of the episode
// state. Collision is true if the agent rectangle overlaps any obstacle
// rectangle (half-open AABB semantics, shared edges do not collide);
// success is true once the agent extends past the right edge of the
// screen. The two flags are observed independently; no mutual exclusion is
// assumed, the reward rule decides what each means.
func detect(s State) (collision, success bool) {
	agent := s.AgentRect()
	for _, obstacle := range s.ObstacleRects() {
		if agent.Overlaps(obstacle) {
			collision = true
			break
		}
	}
	success = float64(s.ScreenW) < s.AgentX+s.AgentW
	return collision, success
}
