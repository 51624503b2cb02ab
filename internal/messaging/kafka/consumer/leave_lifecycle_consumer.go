package consumer

import (
	"context"
	"encoding/json"

	"hrconsole/internal/events"
	"hrconsole/internal/leavebalance"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle merekonsiliasi used_days dari jumlah request
// APPROVED setiap kali status leave request berubah. Reconcile konvergen,
// memproses event yang sama dua kali tidak mengubah hasil akhir.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	balanceService leavebalance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = balanceService.Reconcile(ctx, event.CompanyID, event.EmployeeID, event.LeaveTypeID, event.Year)
		if err != nil {
			log.Error("reconcile leave balance failed",
				zap.String("leave_request_id", event.LeaveRequestID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("leave balance reconciled from lifecycle event",
			zap.String("leave_request_id", event.LeaveRequestID),
			zap.String("event_type", event.EventType),
			zap.String("to_status", event.ToStatus),
		)
	}
}
