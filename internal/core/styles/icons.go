package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconCheckboxOn  = "[x]"
	IconCheckboxOff = "[ ]"
	IconCursor      = "▸"
	IconCity        = "\U000F0C73" // 󰱳
	IconCompare     = "\U000F1492" // 󱒒
	IconDownload    = "\uf019"     // 
	IconSearch      = "\uf002"     // 
	IconClose       = "\uf00d"     // 
	IconTable       = "\uf0ce"     // 
)

// Toast level icons.
var (
	IconInfo    = "\uf05a" // 
	IconSuccess = "\uf00c" // 
	IconWarning = "\uf071" // 
	IconError   = "\uf057" // 
)
