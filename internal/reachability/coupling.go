package reachability

import "github.com/c360studio/autocoder/internal/blueprint"

// coupledOutputs returns the output ports coupled to an input port based on
// component type, implementing the port-faithful traversal rules from
// spec.md §4.1's coupling table. Grounded on
// blueprint_validation/vr1_validator.py's _get_coupled_outputs.
func coupledOutputs(c *blueprint.ComponentSpec, inputPort string) []string {
	hasOutput := func(name string) bool {
		_, ok := c.OutputPort(name)
		return ok
	}
	allOutputs := func() []string {
		names := make([]string, len(c.Outputs))
		for i, p := range c.Outputs {
			names[i] = p.Name
		}
		return names
	}

	switch c.Type {
	case "APIEndpoint":
		if inputPort == "request" && hasOutput("response") {
			return []string{"response"}
		}
		return nil

	case "Controller":
		if len(c.Outputs) == 0 {
			return nil
		}
		for _, p := range c.Inputs {
			if p.Name == inputPort {
				return allOutputs()
			}
		}
		return nil

	case "Store":
		switch inputPort {
		case "write":
			if hasOutput("write_status") {
				return []string{"write_status"}
			}
		case "read":
			if hasOutput("data") {
				return []string{"data"}
			}
		}
		return nil

	case "Transformer":
		return allOutputs()

	case "WebSocket":
		switch inputPort {
		case "connection_request":
			if hasOutput("connection_status") {
				return []string{"connection_status"}
			}
		case "message_in":
			if hasOutput("message_out") {
				return []string{"message_out"}
			}
		}
		return nil

	case "EventBus", "MessageQueue":
		return allOutputs()

	default:
		// Unknown type: conservative default, couples all inputs to all outputs.
		return allOutputs()
	}
}
