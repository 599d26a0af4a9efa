package simulation

import (
	"fmt"
	"strings"
)

// LineStrings renders every kept line in display order.
func (a *Aggregation) LineStrings() []string {
	out := make([]string, 0, len(a.Lines))
	for _, l := range a.Lines {
		out = append(out, l.String())
	}
	return out
}

// FormatScreens renders recorded reward screens one per line.
func FormatScreens(screens []Screen) []string {
	out := make([]string, 0, len(screens))
	for _, s := range screens {
		out = append(out, FormatScreen(s))
	}
	return out
}

// FormatScreen renders "Run n: <rolls> | kept <drops>".
func FormatScreen(s Screen) string {
	rolls := make([]string, 0, len(s.Rolls))
	for _, r := range s.Rolls {
		rolls = append(rolls, fmt.Sprintf(ScreenFmtRoll, r.Drop, r.Rarity, poolName(r.Pool)))
	}
	kept := make([]string, 0, len(s.Kept))
	for _, k := range s.Kept {
		kept = append(kept, k.Drop)
	}

	var b strings.Builder
	fmt.Fprintf(&b, ScreenFmtHeader, s.Run)
	b.WriteByte(' ')
	b.WriteString(strings.Join(rolls, ScreenRollSeparator))
	b.WriteString(ScreenKeptSeparator)
	fmt.Fprintf(&b, ScreenFmtKept, strings.Join(kept, ScreenRollSeparator))
	return b.String()
}

func poolName(i int) string {
	if i == 0 {
		return ScreenPoolPrimaryName
	}
	return fmt.Sprintf(ScreenPoolOffcycleFmt, i)
}
