package world

// defaultLayout is the built-in 13×20 level used when no map file is configured.
var defaultLayout = [][]int{
	{6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6},
	{6, 0, 0, 0, 0, 0, 0, 0, 0, 0, 6, 0, 0, 0, 0, 0, 0, 0, 0, 6},
	{6, 0, 6, 6, 6, 0, 0, 0, 0, 0, 6, 0, 0, 0, 0, 0, 6, 6, 0, 6},
	{6, 0, 6, 0, 0, 0, 0, 0, 0, 0, 6, 6, 6, 6, 6, 0, 0, 0, 0, 6},
	{6, 0, 6, 0, 0, 0, 6, 6, 0, 0, 0, 0, 0, 0, 0, 0, 6, 6, 0, 6},
	{6, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 6, 0, 0, 0, 0, 6, 0, 6},
	{6, 0, 0, 6, 0, 6, 6, 0, 0, 0, 0, 0, 6, 0, 0, 0, 0, 0, 0, 6},
	{6, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 6, 0, 6, 6, 6, 6, 0, 6},
	{6, 0, 0, 6, 0, 0, 0, 6, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 6},
	{6, 0, 0, 6, 0, 6, 0, 0, 0, 0, 0, 0, 6, 6, 6, 0, 6, 6, 0, 6},
	{6, 0, 0, 6, 6, 6, 0, 6, 6, 6, 0, 0, 0, 0, 0, 0, 0, 6, 0, 6},
	{6, 0, 0, 0, 0, 0, 0, 0, 0, 6, 0, 0, 0, 0, 0, 0, 0, 6, 0, 6},
	{6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6},
}

// DefaultMapData returns the built-in level with the player starting at the world centre.
func DefaultMapData(tileSize float64, maxMaterial int) (*MapData, error) {
	grid, err := NewGrid(defaultLayout, tileSize, maxMaterial)
	if err != nil {
		return nil, err
	}
	return &MapData{Grid: grid, StartX: -1, StartY: -1}, nil
}
