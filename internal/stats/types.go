package stats

import "time"

// Stats mirrors the payload a miner publishes on its stats endpoint.
type Stats struct {
	Client ClientStats `json:"client"`
	Mining MiningStats `json:"mining"`
}

// ClientStats describes the miner's connection to its pool or node.
type ClientStats struct {
	ServerURL           string    `json:"serverUrl"`
	Connected           bool      `json:"connected"`
	ConnectionStatus    string    `json:"connectionStatus"`
	LastMessageSent     string    `json:"lastMessageSent"`
	LastMessageReceived string    `json:"lastMessageReceived"`
	LastMessageAt       time.Time `json:"lastMessageAt"`
}

// MiningStats aggregates the current job and every solver device.
type MiningStats struct {
	CombinedGPS       float64       `json:"combinedGps"`
	BlockHeight       uint64        `json:"blockHeight"`
	TargetDifficulty  uint64        `json:"targetDifficulty"`
	NetworkDifficulty uint64        `json:"networkDifficulty"`
	SharesAccepted    uint64        `json:"sharesAccepted"`
	SharesRejected    uint64        `json:"sharesRejected"`
	Devices           []SolverStats `json:"devices"`
}

// SolverStats reports a single solver running on one device.
type SolverStats struct {
	SolverName       string    `json:"solverName"`
	DeviceID         int       `json:"deviceId"`
	DeviceName       string    `json:"deviceName"`
	EdgeBits         int       `json:"edgeBits"`
	Iterations       uint64    `json:"iterations"`
	Solutions        uint64    `json:"solutions"`
	LastStartTime    time.Time `json:"lastStartTime"`
	LastEndTime      time.Time `json:"lastEndTime"`
	LastSolutionTime time.Time `json:"lastSolutionTime"`
	Errored          bool      `json:"errored"`
}

// IterationTime returns how long the last solver iteration took.
func (s SolverStats) IterationTime() time.Duration {
	if s.LastStartTime.IsZero() || s.LastEndTime.Before(s.LastStartTime) {
		return 0
	}
	return s.LastEndTime.Sub(s.LastStartTime)
}

// GPS returns graphs per second for the last iteration.
func (s SolverStats) GPS() float64 {
	d := s.IterationTime()
	if d <= 0 {
		return 0
	}
	return 1 / d.Seconds()
}

// ActiveDevices counts devices that have not errored.
func (m MiningStats) ActiveDevices() int {
	n := 0
	for _, d := range m.Devices {
		if !d.Errored {
			n++
		}
	}
	return n
}
