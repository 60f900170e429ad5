package domain

// Platform is the closed set of platforms the launcher distinguishes.
// Label staging and command assembly policy attach to the variant.
type Platform int

const (
	PlatformPOSIX Platform = iota
	PlatformWindows
)

// ParsePlatform maps the caller-supplied os selector to a Platform.
// "Windows" selects the Windows policies; any other value is POSIX-like.
func ParsePlatform(os string) Platform {
	if os == "Windows" {
		return PlatformWindows
	}
	return PlatformPOSIX
}

func (p Platform) String() string {
	if p == PlatformWindows {
		return "Windows"
	}
	return "POSIX"
}

// RunStatus represents the execution state of a launch
type RunStatus string

const (
	RunDryRun    RunStatus = "dry_run"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)
