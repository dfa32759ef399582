package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement names an external collaborator binary. Optional requirements
// degrade a capability (OCR, hardware encode) instead of blocking a run.
type Requirement struct {
	Name     string
	Command  string
	Optional bool
}

// Status is the outcome of checking one requirement, device, or directory.
type Status struct {
	Name      string
	Command   string
	Optional  bool
	Available bool
	Detail    string
}

// CheckBinaries resolves each requirement's command on PATH. Available
// statuses carry the resolved location in Detail.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, checkBinary(req))
	}
	return results
}

func checkBinary(req Requirement) Status {
	status := Status{
		Name:     req.Name,
		Command:  strings.TrimSpace(req.Command),
		Optional: req.Optional,
	}
	if status.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := exec.LookPath(status.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		return status
	}
	status.Available = true
	status.Detail = resolved
	return status
}
