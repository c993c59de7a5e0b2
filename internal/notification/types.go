package notification

// Mode selects how recipients are fanned out.
type Mode int

const (
	// ModeSequential sends in directory order, one at a time.
	ModeSequential Mode = iota
	// ModeConcurrent sends to every recipient in parallel; ordering is not guaranteed.
	ModeConcurrent
)

func (m Mode) String() string {
	if m == ModeConcurrent {
		return "concurrent"
	}
	return "sequential"
}

// DispatchInput is the input for Dispatch.
type DispatchInput struct {
	Message string
	// Recipients overrides the directory. Empty means every opted-in recipient.
	Recipients []string
	Mode       Mode
}

// Delivery is the outcome for a single recipient.
type Delivery struct {
	Recipient  string
	DeliveryID string
	Err        error
}

// OK reports whether the message was accepted by the transport.
func (d Delivery) OK() bool {
	return d.Err == nil
}

// DispatchOutput lists one Delivery per recipient, in recipient order.
type DispatchOutput struct {
	Deliveries []Delivery
}

// Succeeded returns the number of accepted deliveries.
func (o DispatchOutput) Succeeded() int {
	n := 0
	for _, d := range o.Deliveries {
		if d.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of rejected deliveries.
func (o DispatchOutput) Failed() int {
	return len(o.Deliveries) - o.Succeeded()
}

// AnySucceeded reports whether at least one recipient got the message.
func (o DispatchOutput) AnySucceeded() bool {
	return o.Succeeded() > 0
}
