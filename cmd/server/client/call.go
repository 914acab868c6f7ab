package client

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-shards/internal/handlers/shards/v1alpha1"
)

var callCmd = &cobra.Command{
	Use:   "call [method] [json]",
	Short: "Call any ShardService method with a JSON payload",
	Long: `Call a ShardService method. The payload is a JSON object with snake_case fields:

  call GetLoadout '{"character_id": "actor_1"}'
  call ResizeSlots '{"character_id": "actor_1", "delta": 3}'
  call RemoveShard '{"character_id": "actor_1", "shard_id": 666, "unlock": true}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		method := args[0]
		if !slices.Contains(v1alpha1.MethodNames(), method) {
			return fmt.Errorf("unknown method %q (known: %v)", method, v1alpha1.MethodNames())
		}

		req := &structpb.Struct{}
		if len(args) == 2 {
			if err := protojson.Unmarshal([]byte(args[1]), req); err != nil {
				return fmt.Errorf("invalid JSON payload: %w", err)
			}
		}

		return call(cmd, method, req)
	},
}

var getLoadoutCmd = &cobra.Command{
	Use:   "get-loadout [character-id]",
	Short: "Show a character's shard loadout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := structpb.NewStruct(map[string]any{"character_id": args[0]})
		if err != nil {
			return err
		}
		return call(cmd, v1alpha1.MethodGetLoadout, req)
	},
}

var equipPartyID string

var equipCmd = &cobra.Command{
	Use:   "equip [character-id] [slot] [item]",
	Short: "Equip a shard item (w<id>, a<id> or none) into a zero-based slot",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid slot %q: %w", args[1], err)
		}

		fields := map[string]any{
			"character_id": args[0],
			"slot":         slot,
			"item":         args[2],
		}
		if equipPartyID != "" {
			fields["party_id"] = equipPartyID
		}

		req, err := structpb.NewStruct(fields)
		if err != nil {
			return err
		}
		return call(cmd, v1alpha1.MethodEquipShard, req)
	},
}

var levelUpClassID int

var levelUpCmd = &cobra.Command{
	Use:   "level-up [character-id] [from-level] [to-level]",
	Short: "Grant the class shard slots for a level range",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid from level %q: %w", args[1], err)
		}
		to, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid to level %q: %w", args[2], err)
		}

		fields := map[string]any{
			"character_id": args[0],
			"from_level":   from,
			"to_level":     to,
		}
		if levelUpClassID != 0 {
			fields["class_id"] = levelUpClassID
		}

		req, err := structpb.NewStruct(fields)
		if err != nil {
			return err
		}
		return call(cmd, v1alpha1.MethodLevelUp, req)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the shard service is serving",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		conn, err := createConnection()
		if err != nil {
			return err
		}
		defer func() {
			_ = conn.Close()
		}()

		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{
			Service: v1alpha1.ServiceName,
		})
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		return printMessage(cmd, resp)
	},
}

func init() {
	levelUpCmd.Flags().IntVar(&levelUpClassID, "class", 0, "class id (default: the actor's catalog class)")
	equipCmd.Flags().StringVar(&equipPartyID, "party-id", "", "party whose inventory the shard is exchanged with (default: server default party)")
}
