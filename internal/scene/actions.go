package scene

import "github.com/iburimskiy/lava-lamp/internal/config"

// Action is a settings panel command.
type Action int

const (
	MoreBlobs Action = iota
	FewerBlobs
	Faster
	Slower
	Smoother
	Coarser
	Stickier
	LessSticky
	ToggleScaling
	ToggleAxis
	NextColors
	ResetDefaults
)

const (
	speedStep      = 5
	stickinessStep = 10
)

var actionNames = map[Action]string{
	MoreBlobs:     "more blobs",
	FewerBlobs:    "fewer blobs",
	Faster:        "faster",
	Slower:        "slower",
	Smoother:      "smoother",
	Coarser:       "coarser",
	Stickier:      "stickier",
	LessSticky:    "less sticky",
	ToggleScaling: "toggle scaled repulsion",
	ToggleAxis:    "toggle gradient axis",
	NextColors:    "next colors",
	ResetDefaults: "reset",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Apply returns cfg with the action applied and normalized.
func (a Action) Apply(cfg config.Config) config.Config {
	switch a {
	case MoreBlobs:
		cfg.BlobCount++
	case FewerBlobs:
		cfg.BlobCount--
	case Faster:
		cfg.Speed += speedStep
	case Slower:
		cfg.Speed -= speedStep
	case Smoother:
		cfg.Smoothness++
	case Coarser:
		cfg.Smoothness--
	case Stickier:
		cfg.Stickiness += stickinessStep
	case LessSticky:
		cfg.Stickiness -= stickinessStep
	case ToggleScaling:
		cfg.ScaleRepulsion = !cfg.ScaleRepulsion
	case ToggleAxis:
		cfg.ToggleAxis()
	case NextColors:
		p := config.NextPair(cfg.GradientStart, cfg.GradientEnd)
		cfg.GradientStart, cfg.GradientEnd = p.Start, p.End
	case ResetDefaults:
		cfg = config.Default()
	}
	cfg.Normalize()
	return cfg
}
