//go:build linux

package fdutil

import "golang.org/x/sys/unix"

// dup3 is required on linux arches without a dup2 syscall (arm64, riscv64).
func dup2(oldfd, newfd int) error {
	return unix.Dup3(oldfd, newfd, 0)
}
