// The equipcheck command is the terminal-side client: it lists rosters,
// submits inspections, and manages the local history buffer through the
// same fallback data plane the checklist UI uses.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/fundicaobk/equipcheck/client"
	"github.com/fundicaobk/equipcheck/config"
	"github.com/fundicaobk/equipcheck/datasource"
	"github.com/fundicaobk/equipcheck/history"
	"github.com/fundicaobk/equipcheck/models"
	"github.com/fundicaobk/equipcheck/store"
)

var (
	configPath string
	storePath  string
)

func init() {
	flag.StringVar(&configPath, "config", "equipcheck.toml", "Path to the settings file")
	flag.StringVar(&storePath, "store", "data/store", "Path to the embedded store directory")
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: equipcheck [flags] <command> [args]

commands:
  equipments            list the equipment catalog
  operators [query]     list (or search) the operator roster
  sectors               list sectors
  submit <file.json>    submit a completed checklist
  history               list submission history
  sync                  push the local history buffer to the backend
  export [dir]          export the local buffer to a snapshot file
  import <file.json>    import a snapshot into the local buffer
  health                probe the active backend`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	loader := config.FileLoader(configPath)
	remote := client.New(loader, logger)

	// A store that cannot open is not fatal: the orchestrator degrades to
	// the seed tier, exactly as the UI does on a broken profile.
	st, err := store.Open(storePath, logger)
	if err != nil {
		logger.Warn("embedded store unavailable", zap.Error(err))
		st = nil
	} else {
		defer st.Close()
	}

	hist := history.NewService(st, remote, logger)
	ds := datasource.New(loader, st, remote, hist, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, flag.Args(), ds, hist, remote); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, ds *datasource.DataSource, hist *history.Service, remote *client.Client) error {
	switch args[0] {
	case "equipments":
		for _, e := range ds.ListEquipments(ctx) {
			fmt.Printf("%-6s %-20s %-15s %-8s %s\n", e.ID, e.Name, e.Type, e.Capacity, e.Sector)
		}
	case "operators":
		query := ""
		if len(args) > 1 {
			query = args[1]
		}
		for _, o := range ds.SearchOperators(ctx, query) {
			fmt.Printf("%-6s %-40s %s\n", o.ID, o.Name, o.Sector)
		}
	case "sectors":
		for _, s := range ds.ListSectors(ctx) {
			fmt.Printf("%-6s %-30s %s\n", s.ID, s.Name, s.Email)
		}
	case "submit":
		if len(args) < 2 {
			return fmt.Errorf("submit needs a checklist file")
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		var checklist models.Checklist
		if err := json.Unmarshal(data, &checklist); err != nil {
			return fmt.Errorf("parsing checklist: %w", err)
		}
		created, err := ds.SaveChecklist(ctx, &checklist)
		if err != nil {
			return err
		}
		fmt.Printf("submitted checklist for %s (id %d)\n", created.Equipment, created.ID)
	case "history":
		for _, h := range ds.ListHistory(ctx) {
			fmt.Printf("%-38s %-12s %-30s %s\n", h.ID, h.EquipmentID, h.OperatorName, h.Date)
		}
	case "sync":
		n, err := hist.SyncWithRemote(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("synced %d records\n", n)
	case "export":
		dir := "."
		if len(args) > 1 {
			dir = args[1]
		}
		records, err := hist.Records()
		if err != nil {
			return err
		}
		path, err := history.WriteSnapshotFile(records, dir, time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("exported %d records to %s\n", len(records), path)
	case "import":
		if len(args) < 2 {
			return fmt.Errorf("import needs a snapshot file")
		}
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		records, err := history.ImportSnapshot(f)
		if err != nil {
			return err
		}
		if err := hist.Restore(records); err != nil {
			return err
		}
		fmt.Printf("imported %d records\n", len(records))
	case "health":
		status, err := remote.HealthCheck(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("backend online: %s\n", status.Server)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}
