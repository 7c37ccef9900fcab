// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package analyze

import (
	"fmt"
	"io"
)

// WriteReport writes r as a human-readable totals summary.
func WriteReport(w io.Writer, r Report) error {
	_, err := fmt.Fprintf(w, `generated:              %d
aborted:                %d
reached medium access:  %d
delivered:              %d
delivery rate (gen):    %.4f
delivery rate (reach):  %.4f
forward success rate:   %.4f
backward success rate:  %.4f
bidirectional rate:     %.4f
mean delay (us):        %.3f
stdev delay (us):       %.3f
received, no collision: %d
received, collision:    %d
dropped, collision:     %d
collision fraction:     %.4f
`,
		r.Generated, r.Aborted, r.ReachedMediumAccess, r.Delivered,
		r.DeliveryRateGenerated, r.DeliveryRateReached,
		r.ForwardSuccessRate, r.BackwardSuccessRate, r.BidirectionalRate,
		r.MeanDelayUs, r.StdevDelayUs,
		r.ReceivedNoCollision, r.ReceivedWithCollision, r.DroppedWithCollision,
		r.CollisionFraction)
	return err
}
