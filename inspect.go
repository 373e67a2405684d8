package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrinalgaur2005/hintr-active-jobs/config"
	"github.com/mrinalgaur2005/hintr-active-jobs/model"
	"github.com/mrinalgaur2005/hintr-active-jobs/queue"
)

func newInspectCommand(configPath *string) *cobra.Command {
	var queueName, strategyFlag string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the active job breakdown for one queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if queueName == "" {
				return queue.ErrQueueNameRequired
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			strategy := cfg.CountingStrategy()
			if strategyFlag != "" {
				if strategy, err = queue.ParseStrategy(strategyFlag); err != nil {
					return err
				}
			}

			rq, err := queue.NewRedisQueue(cfg.RedisOptions())
			if err != nil {
				return err
			}
			defer rq.Close()

			out := model.QueueStats{Queue: queueName, Strategy: strategy.String()}
			switch strategy {
			case queue.StrategySimple:
				n, err := rq.Length(cmd.Context(), queueName)
				if err != nil {
					return err
				}
				out.Pending = n
				out.ActiveJobs = n
			default:
				stats, err := rq.Stats(cmd.Context(), queueName)
				if err != nil {
					return err
				}
				out.Pending = stats.Pending
				out.ActiveWorkers = stats.ActiveWorkers
				out.ActiveJobs = stats.Total()
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("failed to write stats: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&queueName, "queue", "q", "", "Queue name to inspect")
	cmd.Flags().StringVar(&strategyFlag, "strategy", "", "Counting strategy (simple or composite)")

	return cmd
}
