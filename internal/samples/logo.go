package samples

import "strings"

// Picture is a block of text embedded as a single transcript element
type Picture []string

func (p Picture) String() string {
	return strings.Join(p, "\n")
}

// Logo is the picture embedded by the image command
var Logo = Picture{
	"   __                                   __   ",
	"  / /__ _  __ _______  ___  ___ ___  / /__ ",
	" / / -_) |/ // __/ _ \\/ _ \\(_-</ _ \\/ / -_)",
	"/_/\\__/|___/ \\__/\\___/_//_/___/\\___/_/\\__/ ",
}
