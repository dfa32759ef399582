package deps

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"recast/internal/config"
)

// Required lists the external binaries a full pipeline run needs.
func Required(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: cfg.Transcode.FFmpegBinary},
		{Name: "FFprobe", Command: cfg.Transcode.FFprobeBinary},
		{Name: "pgsrip", Command: cfg.OCR.Binary, Optional: true},
	}
}

// CheckVAAPIDevice reports whether the render node exists and is readable and
// writable by this process. Hardware encoding falls back to software when it
// is not, so the check is marked optional.
func CheckVAAPIDevice(device string) Status {
	status := Status{
		Name:     "VAAPI device",
		Command:  device,
		Optional: true,
	}
	if device == "" {
		status.Detail = "no device configured"
		return status
	}
	if _, err := os.Stat(device); err != nil {
		status.Detail = fmt.Sprintf("device %q not present", device)
		return status
	}
	if err := unix.Access(device, unix.R_OK|unix.W_OK); err != nil {
		status.Detail = fmt.Sprintf("device %q not accessible: %v", device, err)
		return status
	}
	status.Available = true
	return status
}

// CheckDirectory reports whether dir exists and is writable, for library
// roots and log directories.
func CheckDirectory(name, dir string) Status {
	status := Status{
		Name:    name,
		Command: dir,
	}
	if dir == "" {
		status.Detail = "no path configured"
		return status
	}
	fi, err := os.Stat(dir)
	if err != nil {
		status.Detail = fmt.Sprintf("directory %q not present", dir)
		return status
	}
	if !fi.IsDir() {
		status.Detail = fmt.Sprintf("%q is not a directory", dir)
		return status
	}
	if err := unix.Access(dir, unix.R_OK|unix.W_OK); err != nil {
		status.Detail = fmt.Sprintf("directory %q not writable: %v", dir, err)
		return status
	}
	status.Available = true
	return status
}
