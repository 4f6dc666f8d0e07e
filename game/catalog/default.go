package catalog

import "fmt"

// Default returns the built-in bakery catalog. External catalogs loaded
// through the Manager override it file-by-file.
func Default() *Catalog {
	return &Catalog{
		Name:        "Bakery",
		Description: "Default coffee-and-bread merge catalog",

		Rows: 9,
		Cols: 7,

		StartEnergy: 100,
		MaxEnergy:   100,
		StartCoins:  0,
		StartGems:   100,

		EnergyPrice: 10,
		EnergyGrant: 100,

		MaxOrderItems:  3,
		RewardPerLevel: 10,

		StartGenerator: GeneratorBread,

		Items: map[ItemType]ItemSpec{
			Coffee: {
				Rarity: 0.8,
				Levels: map[int]string{
					1: "Coffee Bean",
					2: "Ground Coffee",
					3: "Paper Cup",
					4: "Hot Coffee",
					5: "Latte",
					6: "Espresso Flight",
				},
			},
			Tea: {
				Rarity: 0.2,
				Levels: map[int]string{
					1: "Tea Leaf",
					2: "Tea Bag",
					3: "Hot Water",
					4: "Green Tea",
					5: "Milk Tea",
					6: "Bubble Tea",
				},
			},
			Bread: {
				Rarity: 1.0,
				Levels: map[int]string{
					1: "Flour",
					2: "Dough",
					3: "Croissant",
					4: "Bagel",
					5: "Loaf",
					6: "Sandwich Platter",
				},
			},
			GeneratorCoffee: {
				// Generators never appear in orders.
				Rarity: 0,
				Levels: map[int]string{
					1: "Old Pot",
					2: "Drip Machine",
					3: "French Press",
					4: "Espresso Machine",
					5: "Commercial Brewer",
					6: "Industrial Roaster",
				},
			},
			GeneratorBread: {
				Rarity: 0,
				Levels: map[int]string{
					1: "Flour Sack",
					2: "Mixing Bowl",
					3: "Small Oven",
					4: "Brick Oven",
				},
			},
		},

		Generators: map[ItemType]map[int][]SpawnOutcome{
			GeneratorCoffee: {
				1: {
					{Type: Coffee, Level: 1, Probability: 1.0},
				},
				2: {
					{Type: Coffee, Level: 1, Probability: 0.8},
					{Type: Tea, Level: 1, Probability: 0.2},
				},
				3: {
					{Type: Coffee, Level: 1, Probability: 0.7},
					{Type: Coffee, Level: 2, Probability: 0.1},
					{Type: Tea, Level: 1, Probability: 0.2},
				},
				4: {
					{Type: Coffee, Level: 1, Probability: 0.6},
					{Type: Coffee, Level: 2, Probability: 0.2},
					{Type: Tea, Level: 1, Probability: 0.2},
				},
				5: {
					{Type: Coffee, Level: 1, Probability: 0.6},
					{Type: Coffee, Level: 2, Probability: 0.2},
					{Type: Tea, Level: 1, Probability: 0.18},
					{Type: Tea, Level: 2, Probability: 0.02},
				},
				6: {
					{Type: Coffee, Level: 1, Probability: 0.6},
					{Type: Coffee, Level: 2, Probability: 0.2},
					{Type: Tea, Level: 1, Probability: 0.15},
					{Type: Tea, Level: 2, Probability: 0.05},
				},
			},
			GeneratorBread: {
				1: {
					{Type: Bread, Level: 1, Probability: 1.0},
				},
				2: {
					{Type: Bread, Level: 1, Probability: 0.9},
					{Type: Bread, Level: 2, Probability: 0.1},
				},
				3: {
					{Type: Bread, Level: 1, Probability: 0.8},
					{Type: Bread, Level: 2, Probability: 0.2},
				},
				4: {
					{Type: Bread, Level: 1, Probability: 0.7},
					{Type: Bread, Level: 2, Probability: 0.3},
				},
			},
		},

		Levels: map[int]LevelSpec{
			1:  {XPThreshold: 0, MaxItemLevel: 2, MaxOrders: 2},
			2:  {XPThreshold: 300, MaxItemLevel: 2, MaxOrders: 2, Reward: &LevelReward{Type: GeneratorCoffee, Level: 1, Energy: 30}},
			3:  {XPThreshold: 700, MaxItemLevel: 3, MaxOrders: 3, Reward: &LevelReward{Type: GeneratorBread, Level: 1, Energy: 30}},
			4:  {XPThreshold: 1200, MaxItemLevel: 3, MaxOrders: 3, Reward: &LevelReward{Type: GeneratorCoffee, Level: 1, Energy: 40}},
			5:  {XPThreshold: 1700, MaxItemLevel: 4, MaxOrders: 4, Reward: &LevelReward{Type: GeneratorBread, Level: 1, Energy: 40}},
			6:  {XPThreshold: 2200, MaxItemLevel: 4, MaxOrders: 4, Reward: &LevelReward{Type: GeneratorCoffee, Level: 1, Energy: 50}},
			7:  {XPThreshold: 2700, MaxItemLevel: 5, MaxOrders: 4, Reward: &LevelReward{Type: GeneratorBread, Level: 1, Energy: 50}},
			8:  {XPThreshold: 3300, MaxItemLevel: 5, MaxOrders: 5, Reward: &LevelReward{Type: GeneratorCoffee, Level: 1, Energy: 60}},
			9:  {XPThreshold: 3900, MaxItemLevel: 6, MaxOrders: 5, Reward: &LevelReward{Type: GeneratorBread, Level: 1, Energy: 60}},
			10: {XPThreshold: 4500, MaxItemLevel: 6, MaxOrders: 5, Reward: &LevelReward{Type: GeneratorCoffee, Level: 1, Energy: 100}},
		},

		Tasks: defaultTasks(),
	}
}

// 45 tasks, 100 XP each, 4500 XP total to match the level thresholds.
func defaultTasks() []TaskSpec {
	specs := []struct {
		name string
		cost int
	}{
		{"Clean Floor", 50},
		{"Wipe Tables", 60},
		{"Fix Counter", 70},
		{"Replace Lightbulb", 80},
		{"Paint Walls", 90},
		{"New Sign", 100},
		{"Repair Door", 100},
		{"Install Shelf", 110},
		{"Buy Chairs", 110},
		{"New Floor Mat", 120},
		{"Coffee Machine", 120},
		{"Display Case", 130},
		{"Menu Board", 130},
		{"Cash Register", 140},
		{"Warming Oven", 140},
		{"Espresso Machine", 150},
		{"Mixer", 150},
		{"Refrigerator", 160},
		{"New Tables", 160},
		{"Outdoor Sign", 170},
		{"Sound System", 170},
		{"Ventilation", 180},
		{"Napkin Holders", 180},
		{"Window Blinds", 190},
		{"Wall Art", 190},
		{"Industrial Oven", 200},
		{"Freezer", 200},
		{"Grinder", 200},
		{"Bar Stools", 200},
		{"WiFi Setup", 200},
		{"Outdoor Seating", 200},
		{"Premium Cups", 200},
		{"Deep Fryer", 200},
		{"Blender", 200},
		{"Ice Machine", 200},
		{"Neon Sign", 200},
		{"Pastry Warmer", 200},
		{"Premium Chairs", 200},
		{"Point of Sale", 200},
		{"Security Camera", 200},
		{"Commercial Roaster", 200},
		{"Delivery Van", 200},
		{"Loyalty Program", 200},
		{"Premium Decor", 200},
		{"Grand Opening", 200},
	}

	tasks := make([]TaskSpec, len(specs))
	for i, s := range specs {
		tasks[i] = TaskSpec{
			ID:   fmt.Sprintf("t%d", i+1),
			Name: s.name,
			Cost: s.cost,
			XP:   100,
		}
	}
	return tasks
}
