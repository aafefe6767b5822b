package tgCallback

// Callback buttons unique names, the button data carries the arguments.
const (
	SetStrategy     string = "set_strategy"     // data: strategy name
	PreviewStrategy string = "preview_strategy" // data: ticker|shares|strategy
)

const DataSeparator = "|"
