package calculator

import (
	mrwlog "github.com/msto63/mRW/foundation/core/log"
)

// LoggingListener logs every history event.
func LoggingListener(logger *mrwlog.Logger) Listener {
	return ListenerFunc(func(event Event) error {
		fields := mrwlog.Fields{
			"event":       event.Kind.String(),
			"history_len": event.Snapshot.Len(),
		}
		if calc := event.Calculation; calc != nil {
			fields["operator"] = calc.Operator.String()
			fields["operand_a"] = calc.OperandA
			fields["operand_b"] = calc.OperandB
			fields["result"] = calc.Result
		}
		logger.Info("history changed", fields)
		return nil
	})
}

// AutoSaveListener writes the history through gateway after every mutation
// except a load, whose contents are already on disk.
func AutoSaveListener(gateway Gateway) Listener {
	return ListenerFunc(func(event Event) error {
		if event.Kind == EventLoaded {
			return nil
		}
		return gateway.Save(event.Snapshot.Entries())
	})
}
