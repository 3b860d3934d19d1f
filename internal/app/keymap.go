package app

// Key binding constants used by the screen handlers.
const (
	KeyQuit     = "q"
	KeyCtrlC    = "ctrl+c"
	KeySpace    = " "
	KeyTab      = "tab"
	KeyShiftTab = "shift+tab"
	KeyUp       = "up"
	KeyDown     = "down"
	KeyJ        = "j"
	KeyK        = "k"
	KeyEnter    = "enter"
	KeyEsc      = "esc"
	KeySubmit   = "ctrl+s"
	KeyYes      = "y"
	KeyYesUpper = "Y"
	KeyNo       = "n"
	KeyNoUpper  = "N"

	// Login form.
	KeyGoSignUp = "ctrl+n"
	KeyGoForgot = "ctrl+f"

	// Welcome menu.
	KeyRecordVideo = "v"
	KeyRecordAudio = "a"
	KeyRecordings  = "r"
	KeyScripts     = "s"
	KeyProfile     = "p"

	// Recording screen.
	KeyFaster    = "+"
	KeyFasterAlt = "="
	KeySlower    = "-"
	KeyBigger    = "]"
	KeySmaller   = "["

	// Review screen.
	KeySave     = "s"
	KeyReRecord = "r"
	KeyDiscard  = "x"

	// Library screens.
	KeyRename = "e"
	KeyDelete = "d"
	KeyNew    = "n"
	KeyLogout = "l"
)
