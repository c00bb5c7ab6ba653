// Package retention prunes run history by age and by count.
//
//	pruner := retention.NewPruner(store, retention.Config{
//	    RetentionDays: 30,
//	    MaxRecords:    10000,
//	    PruneSchedule: "0 3 * * *", // daily at 3 AM
//	})
//
//	// One-off, as in `sieve history prune`
//	stats, err := pruner.Prune(ctx)
//
//	// Background, as in `sieve watch`
//	if err := pruner.Start(ctx); err != nil {
//	    return err
//	}
//	defer pruner.Stop()
//
// Age pruning runs first, then count pruning keeps the newest MaxRecords.
// A zero RetentionDays or MaxRecords disables that phase.
package retention
