package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/vocab"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz right away",
	Example: `  tango play --mode reading --count 20
  tango play --lessons lesson1,lesson3 --level n3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(env *screen.Env) (*screen.QuizRequest, error) {
			if env.LoadErr != nil {
				return nil, env.LoadErr
			}
			req := screen.RequestFromSettings(*env.Settings)

			if cmd.Flags().Changed("mode") {
				s, _ := cmd.Flags().GetString("mode")
				mode, err := questiongen.ParseMode(s)
				if err != nil {
					return nil, err
				}
				req.Mode = mode
			}
			if cmd.Flags().Changed("count") {
				n, _ := cmd.Flags().GetInt("count")
				if n < 0 {
					return nil, fmt.Errorf("count must be >= 0, got %d", n)
				}
				req.Count = n
			}
			ids, _ := cmd.Flags().GetStringSlice("lessons")
			if len(ids) > 0 {
				if err := checkLessons(env.Lessons, ids); err != nil {
					return nil, err
				}
				req.Lessons = ids
			}
			*env.Settings = screen.Settings{Mode: req.Mode, Count: req.Count, Lessons: req.Lessons}
			return &req, nil
		})
	},
}

// checkLessons rejects lesson ids the level does not have.
func checkLessons(lessons vocab.Lessons, ids []string) error {
	for _, id := range ids {
		if id == vocab.AllLessons {
			continue
		}
		if _, ok := lessons[id]; !ok {
			return fmt.Errorf("unknown lesson %q (see tango lessons)", id)
		}
	}
	return nil
}

func init() {
	playCmd.Flags().String("mode", "", "Question mode: reading, meaning, usage, mixed")
	playCmd.Flags().Int("count", 0, "Number of questions, 0 for all")
	playCmd.Flags().StringSlice("lessons", nil, "Lessons to draw from, e.g. lesson1,lesson2")
}
