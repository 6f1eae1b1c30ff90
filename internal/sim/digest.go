package sim

import (
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// Digest hashes the event log and final state of res with BLAKE2b-256.
// Creature ids are random, so they enter the hash as scenario refs: two runs
// of the same scenario against the same catalog produce the same digest.
func Digest(res *Result) string {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Only a key longer than 64 bytes fails.
		panic(err)
	}

	fmt.Fprintf(h, "turns=%d over=%t winner=%d\n", res.Turns, res.Over, res.Winner)
	for _, ev := range res.Events {
		fmt.Fprintf(h, "ev %d %s %s %d %q\n",
			ev.Kind, res.Ref(ev.Source), res.Ref(ev.Target), ev.Amount, ev.Description)
	}
	for _, l := range res.Learned {
		fmt.Fprintf(h, "learn %s %d %d %d\n", l.Ref, l.Outcome.Level, l.Outcome.MoveID, l.Outcome.Result)
	}
	for _, st := range res.Final {
		writeState(h, st)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeState(w io.Writer, st CreatureState) {
	fmt.Fprintf(w, "final %s %q L%d exp=%d hp=%d/%d", st.Ref, st.Name, st.Level, st.Exp, st.HP, st.MaxHP)
	for _, m := range st.Moves {
		fmt.Fprintf(w, " %d:%d/%d", m.MoveID, m.PP.Current, m.PP.Max)
	}
	fmt.Fprintln(w)
}
