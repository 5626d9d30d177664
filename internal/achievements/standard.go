// ABOUTME: The standard achievement set for food logging.
// ABOUTME: Waste, nutrition, streak, variety, balance, logging, and legendary tiers.
package achievements

// Category names.
const (
	CategoryZeroCrumb = "ZERO CRUMB!"
	CategoryCalorie   = "CALORIE"
	CategoryProtein   = "PROTEIN"
	CategorySugar     = "SUGAR"
	CategoryFiber     = "FIBER"
	CategoryStreak    = "STREAK"
	CategoryVariety   = "VARIETY"
	CategoryBalance   = "BALANCE"
	CategoryLogging   = "LOGGING"
	CategoryLegendary = "LEGENDARY"
)

// UltimateID is the compound legendary achievement.
const UltimateID = "legend_ultimate"

// Standard returns the standard definitions in catalog order.
func Standard() []Definition {
	tier := func(category, icon string) func(id, title, badge, cond string, reward int64, rule Rule) Definition {
		return func(id, title, badge, cond string, reward int64, rule Rule) Definition {
			return Definition{
				ID:           id,
				Category:     category,
				CategoryIcon: icon,
				Title:        title,
				Icon:         badge,
				Condition:    cond,
				RewardXP:     reward,
				Rule:         rule,
			}
		}
	}

	zero := tier(CategoryZeroCrumb, "🌱")
	cal := tier(CategoryCalorie, "🔥")
	protein := tier(CategoryProtein, "🍗")
	sugar := tier(CategorySugar, "🍬")
	fiber := tier(CategoryFiber, "🌾")
	streak := tier(CategoryStreak, "📅")
	variety := tier(CategoryVariety, "🥗")
	balance := tier(CategoryBalance, "⚖️")
	logging := tier(CategoryLogging, "📷")
	legend := tier(CategoryLegendary, "🏆")

	return []Definition{
		zero("zero_crumb_1", "Clean Plate Rookie", "🥄", "1 meal with 0g waste", 50, Threshold(MetricZeroWasteMeals, 1)),
		zero("zero_crumb_5", "No Crumbs Left", "✨", "5 zero-waste meals", 150, Threshold(MetricZeroWasteMeals, 5)),
		zero("zero_crumb_20", "Waste Warrior", "⚔️", "20 zero-waste meals", 400, Threshold(MetricZeroWasteMeals, 20)),
		zero("zero_crumb_50", "Planet Protector", "🌍", "50 zero-waste meals", 900, Threshold(MetricZeroWasteMeals, 50)),
		zero("zero_crumb_100", "Eco Legend", "🌿", "100 zero-waste meals", 2000, Threshold(MetricZeroWasteMeals, 100)),

		cal("calorie_5k", "Calorie Counter", "🔢", "5000 kcal logged", 200, Threshold(MetricTotalCalories, 5000)),
		cal("calorie_25k", "Nutrition Tracker Pro", "📊", "25,000 kcal logged", 900, Threshold(MetricTotalCalories, 25000)),

		protein("protein_100", "Protein Starter", "💪", "100g total protein consumed", 100, Threshold(MetricTotalProtein, 100)),
		protein("protein_1k", "Muscle Builder", "🏋️", "1000g total protein consumed", 500, Threshold(MetricTotalProtein, 1000)),
		protein("protein_5k", "Iron Chef Physique", "🔥", "5000g total protein consumed", 1500, Threshold(MetricTotalProtein, 5000)),

		sugar("sugar_5", "Sweet Control", "🍎", "5 meals with less than 10g of sugar", 150, Threshold(MetricLowSugarMeals, 5)),
		sugar("sugar_25", "Sugar Slayer", "⚡", "25 meals with less than 10g of sugar", 600, Threshold(MetricLowSugarMeals, 25)),
		sugar("sugar_75", "Candy Crusher", "🍭", "75 meals with less than 10g of sugar", 1500, Threshold(MetricLowSugarMeals, 75)),

		fiber("fiber_100", "Gut Guardian", "🌾", "100g total fiber consumed", 250, Threshold(MetricTotalFiber, 100)),
		fiber("fiber_500", "Digestive Master", "🧘", "500g total fiber consumed", 1000, Threshold(MetricTotalFiber, 500)),

		streak("streak_3", "First Habit", "📆", "Log meals 3 days in a row", 100, Threshold(MetricDailyStreak, 3)),
		streak("streak_14", "Routine Builder", "⏳", "14-day logging streak", 700, Threshold(MetricDailyStreak, 14)),
		streak("streak_30", "Discipline Machine", "🤖", "30-day logging streak", 2000, Threshold(MetricDailyStreak, 30)),

		variety("variety_10", "Curious Eater", "🥕", "10 unique detected food items", 200, Threshold(MetricUniqueFoods, 10)),
		variety("variety_30", "Culinary Explorer", "🍣", "30 unique detected food items", 800, Threshold(MetricUniqueFoods, 30)),
		variety("variety_75", "World Taster", "🌎", "75 unique detected food items", 2000, Threshold(MetricUniqueFoods, 75)),

		balance("balance_3", "Balanced Bite", "⚖️", "3 meals with ≥20g protein, ≥5g fiber, ≤15g sugar, ≤10g waste", 200, Threshold(MetricBalancedMeals, 3)),
		balance("balance_20", "Nutrition Knight", "🛡", "20 balanced meals", 900, Threshold(MetricBalancedMeals, 20)),

		logging("log_1", "First Entry", "📝", "Log 1 meal", 30, Threshold(MetricMealsLogged, 1)),
		logging("log_25", "Getting Serious", "📷", "Log 25 meals", 300, Threshold(MetricMealsLogged, 25)),
		logging("log_100", "Data Devourer", "📈", "Log 100 meals", 1500, Threshold(MetricMealsLogged, 100)),

		legend("legend_zero_month", "Zero Waste Month", "🏆", "30 consecutive zero-waste meals", 1200, Threshold(MetricZeroWasteStreak, 30)),
		legend(UltimateID, "Ultimate Sustainability Master", "👑", "100 zero-waste meals, 30-day streak, 5000g protein, 75 unique foods", 5000, AllOf(
			Condition{Metric: MetricZeroWasteMeals, Min: 100},
			Condition{Metric: MetricDailyStreak, Min: 30},
			Condition{Metric: MetricTotalProtein, Min: 5000},
			Condition{Metric: MetricUniqueFoods, Min: 75},
		)),
	}
}

// NewCatalog returns the standard catalog.
func NewCatalog() *Catalog {
	c, err := New(Standard())
	if err != nil {
		panic("achievements: invalid standard catalog: " + err.Error())
	}
	return c
}
