package cmd

import (
	"flag"

	"github.com/finkeeper/finkeeper/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the bash completion of the application: its global flags
// and every subcommand with its flags.
func Completion() *complete.Command {
	c := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(flag.CommandLine),
	}
	var names predict.Set
	for _, sc := range Commands() {
		fs := flag.NewFlagSet(sc.Name(), flag.ContinueOnError)
		sc.SetFlags(fs)
		c.Sub[sc.Name()] = &complete.Command{Flags: predictFlags(fs)}
		names = append(names, sc.Name())
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		c.Sub["topic"].Args = predict.Set(topics)
	}
	c.Sub["help"] = &complete.Command{Args: names}
	return c
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		switch f.Name {
		case "sort":
			flags[f.Name] = predict.Set{"date", "-date", "amount", "-amount"}
		case "p":
			flags[f.Name] = predict.Set{"day", "week", "month", "quarter", "year"}
		case "config":
			flags[f.Name] = predict.Files("*.yaml")
		case "data-file":
			flags[f.Name] = predict.Files("*")
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}
