//go:build !unix

package glestex

import "github.com/cockroachdb/errors"

func closeFD(int) error {
	return errors.New("glestex: DMA-BUF file descriptors are unix-only")
}
