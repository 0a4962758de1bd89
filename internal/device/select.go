package device

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolve picks a device by name (case-insensitive substring match) or
// numeric index out of infos; an empty nameOrIndex falls back to def.
// Returns an error only if nameOrIndex is non-empty and nothing
// matches.
func Resolve(infos []Info, nameOrIndex string, def Info) (Info, error) {
	if nameOrIndex == "" {
		return def, nil
	}
	if idx, err := strconv.Atoi(nameOrIndex); err == nil {
		for _, info := range infos {
			if info.Index == idx {
				return info, nil
			}
		}
		return Info{}, fmt.Errorf("device: no device at index %d", idx)
	}
	needle := strings.ToLower(nameOrIndex)
	for _, info := range infos {
		if strings.Contains(strings.ToLower(info.Name), needle) {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("device: no device matching %q", nameOrIndex)
}

// PreferredSampleRate implements C10 step 3: 48000 Hz if the host
// supports it for cfg, otherwise the lower of the two devices'
// default rates.
func PreferredSampleRate(host Host, cfg Config) float64 {
	const preferred = 48000.0
	if host.SupportsSampleRate(cfg, preferred) {
		return preferred
	}
	rate := cfg.Input.DefaultSampleRate
	if cfg.Output.DefaultSampleRate < rate {
		rate = cfg.Output.DefaultSampleRate
	}
	return rate
}

// ValidateMonitorChannels checks monitor_start/monitor_end against an
// output device's channel count per spec §4.5/§9 (open question:
// num_output_channels < monitor_end+1 is a startup error).
func ValidateMonitorChannels(monitorStart, monitorEnd, numOutputChannels int) error {
	if monitorEnd != monitorStart+1 {
		return fmt.Errorf("device: monitor channels must be adjacent (end=%d, start=%d)", monitorEnd, monitorStart)
	}
	if monitorStart < 0 || monitorEnd >= numOutputChannels {
		return fmt.Errorf("device: monitor channels %d-%d exceed %d output channels", monitorStart, monitorEnd, numOutputChannels)
	}
	return nil
}
