package hostenv

import (
	"slices"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// Drive describes a mounted partition that could serve as a backup
// destination.
type Drive struct {
	Device     string
	Mountpoint string
	Fstype     string
	Removable  bool
}

// Filesystems typically found on USB sticks and SD cards. Used as a
// heuristic on platforms where mount options don't flag removability.
var removableFstypes = []string{"vfat", "exfat", "msdos", "fat32"}

// ListDrives enumerates mounted partitions. Removability is best-effort:
// it is advisory input for picking a destination, never a hard gate.
func ListDrives() ([]Drive, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}
	drives := make([]Drive, 0, len(parts))
	for _, p := range parts {
		drives = append(drives, Drive{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
			Removable:  isRemovable(p),
		})
	}
	return drives, nil
}

// ListRemovableDrives filters ListDrives down to likely USB destinations.
func ListRemovableDrives() ([]Drive, error) {
	drives, err := ListDrives()
	if err != nil {
		return nil, err
	}
	removable := drives[:0]
	for _, d := range drives {
		if d.Removable {
			removable = append(removable, d)
		}
	}
	return removable, nil
}

func isRemovable(p disk.PartitionStat) bool {
	for _, opt := range p.Opts {
		if strings.EqualFold(opt, "removable") {
			return true
		}
	}
	return slices.Contains(removableFstypes, strings.ToLower(p.Fstype))
}
