package framework

import (
	"strconv"
	"strings"

	"github.com/pl/testbridge/internal/errors"
	"github.com/pl/testbridge/internal/location"
)

// specSuffix is the file-naming convention RSpec spec files must follow.
const specSuffix = "_spec.rb"

// lineFlag selects examples by line number; one flag per requested line.
const lineFlag = "-l"

// SpecTarget is a location that passed the RSpec naming rules. The path
// is normalized (leading "./" stripped) and the line order is unchanged.
// Only a SpecTarget may reach CompileSpec.
type SpecTarget struct {
	Path  string
	Lines []int
}

// ValidateSpec checks a parsed location against the RSpec file-naming
// convention. Rules apply in order and the first failure wins: the path
// must be non-empty once an optional leading "./" is stripped, and must
// end in "_spec.rb". Validation is a pure string check; whether the file
// exists is the launcher's concern, not a shape concern.
func ValidateSpec(loc location.Location) (SpecTarget, error) {
	path := strings.TrimPrefix(loc.Path, "./")
	if path == "" {
		return SpecTarget{}, errors.EmptyPath(loc.String())
	}
	if !strings.HasSuffix(path, specSuffix) {
		return SpecTarget{}, errors.InvalidSpecSuffix(loc.String())
	}
	return SpecTarget{Path: path, Lines: loc.Lines}, nil
}

// CompileSpec merges a base command with a validated spec target. The
// path is appended as a single argument, then every line number becomes
// its own "-l N" pair in the original order. Two lines produce two
// independent filters, never a combined range.
func CompileSpec(base string, target SpecTarget) (Command, error) {
	cmd, err := SplitBase(base)
	if err != nil {
		return Command{}, err
	}
	cmd.Args = append(cmd.Args, target.Path)
	for _, line := range target.Lines {
		cmd.Args = append(cmd.Args, lineFlag, strconv.Itoa(line))
	}
	return cmd, nil
}
