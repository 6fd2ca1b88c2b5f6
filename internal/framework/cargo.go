package framework

// CargoArgs describes a Cargo test request: an optional name pattern
// (empty means absent) plus passthrough arguments in caller order.
type CargoArgs struct {
	Pattern   string
	ExtraArgs []string
}

// CompileCargo merges a base command with cargo test arguments. The
// pattern, when present, is appended verbatim as one argument, followed
// by each extra argument unmodified. No quoting or escaping happens
// here; that is the launcher's contract.
func CompileCargo(base string, args CargoArgs) (Command, error) {
	cmd, err := SplitBase(base)
	if err != nil {
		return Command{}, err
	}
	if args.Pattern != "" {
		cmd.Args = append(cmd.Args, args.Pattern)
	}
	cmd.Args = append(cmd.Args, args.ExtraArgs...)
	return cmd, nil
}
