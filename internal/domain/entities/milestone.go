package entities

// Milestone is one level of the learned-words ladder.
type Milestone struct {
	Min          int    // lower bound of learned words, inclusive
	Max          int    // upper bound of learned words, inclusive
	Percentage   int    // share of the catalog reached at Min
	Message      string // motivational message
	Level        string // level badge
	LevelMessage string // short description of the level
}

// DefaultMilestones returns the ladder for the 1000-word catalog.
// A fresh slice is returned on every call so callers cannot mutate the table.
func DefaultMilestones() []Milestone {
	return []Milestone{
		{Min: 0, Max: 50, Percentage: 5, Message: "🚀 ¡Apenas empiezas, gran trabajo! Lo importante es la constancia.", Level: "🌱 Seed", LevelMessage: "Estás sembrando la base."},
		{Min: 51, Max: 100, Percentage: 10, Message: "📚 Ya dominas las primeras 100 palabras. ¡Excelente base!", Level: "🌿 Grow", LevelMessage: "Tu inglés está creciendo con fuerza."},
		{Min: 101, Max: 250, Percentage: 25, Message: "🔥 Vas tomando ritmo, ya puedes comunicar ideas básicas.", Level: "🌿 Grow", LevelMessage: "Tu inglés está creciendo con fuerza."},
		{Min: 251, Max: 500, Percentage: 50, Message: "🌎 Mitad del camino: ya entiendes muchas conversaciones sencillas.", Level: "🌳 Tree", LevelMessage: "Ya tienes un árbol sólido de vocabulario."},
		{Min: 501, Max: 750, Percentage: 75, Message: "⚡ Tu vocabulario es fuerte, puedes leer textos con buena comprensión.", Level: "🌳 Tree", LevelMessage: "Ya tienes un árbol sólido de vocabulario."},
		{Min: 751, Max: 900, Percentage: 90, Message: "🏆 Estás en nivel avanzado, casi un experto en inglés cotidiano.", Level: "🌄 Summit", LevelMessage: "Escalando hacia la cima."},
		{Min: 901, Max: 999, Percentage: 99, Message: "👑 ¡Impresionante! Te falta muy poco para dominar el reto.", Level: "🌄 Summit", LevelMessage: "Escalando hacia la cima."},
		{Min: 1000, Max: 1000, Percentage: 100, Message: "🎉 ¡Felicidades! Has completado las 1000 palabras. ¡Nivel legendario!", Level: "🌟 Master", LevelMessage: "Has alcanzado el dominio."},
	}
}
