package rsnapshot

import "snapwheel-hq/snapwheel/pkg/runner"

// DefaultTool is the rsnapshot executable name used when no explicit path
// is configured.
const DefaultTool = "rsnapshot"

// Command builds the rsnapshot invocation for one retention tier:
// rsnapshot -c <confPath> [-t] <tier>.
//
// With simulate set, rsnapshot's -t flag makes it print what it would do
// without touching any snapshot.
func Command(tool, confPath, tier string, simulate bool) runner.Command {
	if tool == "" {
		tool = DefaultTool
	}

	args := make([]string, 0, 4)
	if confPath != "" {
		args = append(args, "-c", confPath)
	}
	if simulate {
		args = append(args, "-t")
	}
	args = append(args, tier)

	return runner.Command{
		Tool: tool,
		Args: args,
		Tier: tier,
	}
}
