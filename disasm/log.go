package disasm

import (
	"io/ioutil"
	"log"
	"os"
)

var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := ioutil.Discard

	if PrintDebugInfo {
		w = os.Stderr
	}

	logger = log.New(w, "", log.Lshortfile)
}

// SetDebugMode enables or disables the package's debug logging.
func SetDebugMode(dbg bool) {
	w := ioutil.Discard

	if dbg {
		w = os.Stderr
	}

	logger = log.New(w, "", log.Lshortfile)
}
