// compileinfoprint is imported for the side effect of printing the compileinfo
// to os.Stderr
package compileinfoprint

import (
	"os"

	"github.com/RPINerd/FastQC-Pipeline/compileinfo"
)

func init() {
	compileinfo.Fprint(os.Stderr)
}
