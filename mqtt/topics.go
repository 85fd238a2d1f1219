package mqtt

import "fmt"

// DefaultPrefix is the first topic level when none is configured.
const DefaultPrefix = "lumifur"

// Topics is the topic layout of one device, all under <prefix>/<client_id>/.
type Topics struct {
	Control     string // commands from the controller: "0" rest, "1" animate
	Presence    string // controller presence: "online" / "offline"
	Status      string // device status, retained, "offline" as last will
	Mode        string // current motion mode, retained
	Temperature string // internal temperature in Celsius, retained
	CPU         string // load metric, retained
}

// NewTopics builds the topic layout for clientID.
func NewTopics(prefix, clientID string) Topics {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	base := fmt.Sprintf("%s/%s", prefix, clientID)
	return Topics{
		Control:     base + "/control",
		Presence:    base + "/presence",
		Status:      base + "/status",
		Mode:        base + "/mode",
		Temperature: base + "/telemetry/temperature",
		CPU:         base + "/telemetry/cpu",
	}
}
