package file

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NumToPath numbers the inputs of a batch run.
type NumToPath map[uint32]string

func CreateFileNumMap(paths []string) NumToPath {
	res := make(NumToPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// OutputName is the name of the file holding the result for input num. The
// number keeps inputs with the same base name apart.
func OutputName(num uint32, path string, ext string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%05d_%s.%s", num, base, ext)
}
