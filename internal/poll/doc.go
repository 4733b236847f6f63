// Package poll runs cancellable, self-rescheduling fetch loops.
//
// Each view starts one Task on activation and stops it on teardown:
//
//	task := poll.Start(ctx, poll.Options{Name: "records", Session: s, Interval: 5 * time.Second}, fetch)
//	defer task.Stop()
//	for res := range task.Results() {
//		// res.Session == s, res.Err, res.Value
//	}
//
// A fetch that returns after Stop is dropped. Consecutive failures stretch the
// delay exponentially up to 30 seconds; the first success restores the base
// interval.
package poll
