package core

// GameOptions carries per-session choices made before a game is created,
// such as a custom config file or a difficulty preset.
// Zero values select the game's defaults.
type GameOptions struct {
	ConfigPath string
	Difficulty string
}
