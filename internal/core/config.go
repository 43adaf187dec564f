package core

// RuntimeConfig contains what a playground needs to know about its terminal
// and session at startup.
type RuntimeConfig struct {
	ScreenW   int    // Screen width in cells
	ScreenH   int    // Screen height in cells
	SceneID   string // Registered scene to run
	SessionID string // Identifies the session in the gesture journal
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		SceneID: "boxed",
	}
}
