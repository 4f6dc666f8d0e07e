// Command analyze-catalog prints human-readable heuristics about item
// catalogs: expected generator output per level, the task economy, and
// which order families become producible as the player levels up. It also
// validates catalog files before a deploy.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/pastrysoft/merge-bakery/game/catalog"
)

func main() {
	cmd := &cli.Command{
		Name:  "analyze-catalog",
		Usage: "inspect and validate merge bakery item catalogs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "catalogs",
				Usage: "directory containing catalog JSON files",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "print spawn tables, task economy and producibility for a catalog",
				ArgsUsage: "[catalog-id]",
				Action:    runAnalyze,
			},
			{
				Name:   "validate",
				Usage:  "validate every catalog in the directory",
				Action: runValidate,
			},
			{
				Name:   "list",
				Usage:  "list catalogs in the directory",
				Action: runList,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadCatalog resolves a catalog by ID through the manager so the built-in
// default stays reachable as "default".
func loadCatalog(cmd *cli.Command, id string) (*catalog.Catalog, error) {
	manager, err := catalog.NewManager(cmd.String("dir"))
	if err != nil {
		return nil, err
	}
	if id == "" || id == "default" {
		return manager.GetDefault(), nil
	}
	return manager.Load(id)
}

func runAnalyze(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	c, err := loadCatalog(cmd, id)
	if err != nil {
		return err
	}

	fmt.Printf("=== %s ===\n", c.Name)
	fmt.Printf("Grid: %dx%d | Energy: %d/%d | Start: %d coins, %d gems\n",
		c.Rows, c.Cols, c.StartEnergy, c.MaxEnergy, c.StartCoins, c.StartGems)
	fmt.Printf("Energy purchase: %d gems -> %d energy\n\n", c.EnergyPrice, c.EnergyGrant)

	printSpawnTables(c)
	printProducibility(c)
	printTaskEconomy(c)
	return nil
}

func printSpawnTables(c *catalog.Catalog) {
	fmt.Println("Spawn tables (probability | item):")

	gens := make([]catalog.ItemType, 0, len(c.Generators))
	for gen := range c.Generators {
		gens = append(gens, gen)
	}
	sort.Slice(gens, func(i, j int) bool { return gens[i] < gens[j] })

	for _, gen := range gens {
		levels := make([]int, 0, len(c.Generators[gen]))
		for lvl := range c.Generators[gen] {
			levels = append(levels, lvl)
		}
		sort.Ints(levels)

		for _, lvl := range levels {
			fmt.Printf("  %s L%d:\n", gen, lvl)
			for _, outcome := range c.Generators[gen][lvl] {
				fmt.Printf("    %5.1f%% | %s L%d\n",
					outcome.Probability*100, outcome.Type, outcome.Level)
			}
		}
	}
	fmt.Println()
}

// printProducibility shows which item families become producible as
// generators level up. Orders only ask for producible families, so this is
// also the order-pool table.
func printProducibility(c *catalog.Catalog) {
	fmt.Println("Producible families by generator level:")

	maxGenLevel := 0
	for gen := range c.Generators {
		for lvl := range c.Generators[gen] {
			if lvl > maxGenLevel {
				maxGenLevel = lvl
			}
		}
	}

	for lvl := 1; lvl <= maxGenLevel; lvl++ {
		families := map[catalog.ItemType]bool{}
		for gen := range c.Generators {
			for _, outcome := range c.SpawnTable(gen, lvl) {
				if c.Rarity(outcome.Type) > 0 {
					families[outcome.Type] = true
				}
			}
		}

		names := make([]string, 0, len(families))
		for family := range families {
			names = append(names, string(family))
		}
		sort.Strings(names)

		fmt.Printf("  gen L%d: ", lvl)
		for i, name := range names {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(name)
		}
		fmt.Println()
	}
	fmt.Println()
}

func printTaskEconomy(c *catalog.Catalog) {
	totalCost, totalXP := 0, 0
	for _, task := range c.Tasks {
		totalCost += task.Cost
		totalXP += task.XP
	}

	fmt.Printf("Task economy: %d tasks, %d coins total cost, %d XP total\n",
		len(c.Tasks), totalCost, totalXP)

	topThreshold := 0
	for lvl := 2; lvl <= c.MaxDefinedLevel(); lvl++ {
		spec := c.LevelFor(lvl)
		fmt.Printf("  L%d at %d XP (max item level %d, %d order slots)\n",
			lvl, spec.XPThreshold, spec.MaxItemLevel, spec.MaxOrders)
		if spec.XPThreshold > topThreshold {
			topThreshold = spec.XPThreshold
		}
	}

	if totalXP >= topThreshold {
		fmt.Printf("  All %d levels reachable (XP surplus: %d)\n", c.MaxDefinedLevel(), totalXP-topThreshold)
	} else {
		fmt.Printf("  ⚠️  Top level unreachable: tasks grant %d XP but L%d needs %d\n",
			totalXP, c.MaxDefinedLevel(), topThreshold)
	}
	fmt.Println()
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	manager, err := catalog.NewManager(cmd.String("dir"))
	if err != nil {
		return err
	}

	infos, err := manager.List()
	if err != nil {
		return err
	}

	failed := 0
	for _, info := range infos {
		c, err := loadCatalog(cmd, info.CatalogID)
		if err != nil {
			fmt.Printf("✗ %s: %v\n", info.CatalogID, err)
			failed++
			continue
		}
		if err := catalog.Validate(c); err != nil {
			fmt.Printf("✗ %s: %v\n", info.CatalogID, err)
			failed++
			continue
		}
		fmt.Printf("✓ %s (%s)\n", info.CatalogID, c.Name)
	}

	if failed > 0 {
		return fmt.Errorf("%d catalog(s) failed validation", failed)
	}
	return nil
}

func runList(ctx context.Context, cmd *cli.Command) error {
	manager, err := catalog.NewManager(cmd.String("dir"))
	if err != nil {
		return err
	}

	infos, err := manager.List()
	if err != nil {
		return err
	}

	for _, info := range infos {
		fmt.Printf("%-12s %s (%dx%d, %d tasks)\n",
			info.CatalogID, info.Name, info.Rows, info.Cols, info.TaskCount)
	}
	return nil
}
