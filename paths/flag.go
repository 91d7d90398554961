package paths

import (
	"flag"
	"fmt"
)

// SetupFilePathFlag registers a string flag on fs holding the path to
// fileName, described as what in the usage text. It defaults to the file
// located by Find, or to an empty string if there is none.
func SetupFilePathFlag(fs *flag.FlagSet, fileName, flagName, what string, flagPtr *string) {
	fs.StringVar(flagPtr, flagName, Find(fileName), fmt.Sprintf(
		"path to the %s; by default %s next to the executable or in the working directory", what, fileName))
}
