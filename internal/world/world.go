// world.go

package world

import (
	"fmt"
	"math/rand"
)

// MapSize 地图边长
const MapSize = 500

// 隐藏遗迹
const (
	hiddenRuinCount     = 35
	hiddenRuinBaseLevel = 150
	hiddenRuinLevelStep = 20
)

// LocationKind 地点类型
type LocationKind string

const (
	KindTown    LocationKind = "town"
	KindDungeon LocationKind = "dungeon"
)

// Location 城镇或地下城
type Location struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	X        int          `json:"x"`
	Y        int          `json:"y"`
	Kind     LocationKind `json:"kind"`
	RecLevel int          `json:"rec_level,omitempty"`
	Greeting string       `json:"greeting,omitempty"`
	// Final 最后的地下城，可以挑战最终首领
	Final bool `json:"final,omitempty"`
}

var fixedLocations = []Location{
	{ID: "town_start", Name: "起始之镇", X: 10, Y: 10, Kind: KindTown, Greeting: "村长：世界扩展到了500x500！"},
	{ID: "town_central", Name: "巨石中央都", X: 250, Y: 250, Kind: KindTown, Greeting: "士兵：这里是世界的中心。"},
	{ID: "town_snow", Name: "冻土之都", X: 50, Y: 450, Kind: KindTown, Greeting: "守护者：西北终年冰封。"},
	{ID: "town_desert", Name: "黄金沙漠城", X: 450, Y: 50, Kind: KindTown, Greeting: "商人：东南的沙地下埋着黄金。"},
	{ID: "town_volcano", Name: "喷火村", X: 450, Y: 450, Kind: KindTown, Greeting: "工匠：火山带危机四伏。"},
	{ID: "town_islet", Name: "孤岛度假村", X: 50, Y: 50, Kind: KindTown, Greeting: "旅人：你是渡海而来的吗？"},
	{ID: "town_forest", Name: "巨木之乡", X: 120, Y: 280, Kind: KindTown, Greeting: "精灵：倾听森林的低语吧。"},
	{ID: "town_mine", Name: "废矿之镇", X: 380, Y: 150, Kind: KindTown, Greeting: "矿工：深处有巨大的魔物……"},

	{ID: "dungeon_1", Name: "试炼洞窟", X: 15, Y: 20, Kind: KindDungeon, RecLevel: 5},
	{ID: "dungeon_water", Name: "深海神殿", X: 60, Y: 40, Kind: KindDungeon, RecLevel: 50},
	{ID: "dungeon_forest", Name: "暗黑树海", X: 140, Y: 300, Kind: KindDungeon, RecLevel: 120},
	{ID: "dungeon_desert", Name: "金字塔迷宫", X: 460, Y: 30, Kind: KindDungeon, RecLevel: 250},
	{ID: "dungeon_snow", Name: "绝对零度之狱", X: 30, Y: 470, Kind: KindDungeon, RecLevel: 400},
	{ID: "dungeon_fire", Name: "灼热终焉", X: 470, Y: 470, Kind: KindDungeon, RecLevel: 600},
	{ID: "dungeon_sky", Name: "天空之城", X: 250, Y: 10, Kind: KindDungeon, RecLevel: 800},
	{ID: "dungeon_last", Name: "次元夹缝", X: 495, Y: 495, Kind: KindDungeon, RecLevel: 1000, Final: true},
}

type point struct{ x, y int }

// World 世界地图
// 地形由种子决定，不保存整张地图
type World struct {
	Seed      int64
	Locations []Location

	index map[point]int
}

// New 按种子生成世界
func New(seed int64) *World {
	w := &World{
		Seed:      seed,
		Locations: make([]Location, 0, len(fixedLocations)+hiddenRuinCount),
		index:     make(map[point]int),
	}
	for _, loc := range fixedLocations {
		w.add(loc)
	}

	r := rand.New(rand.NewSource(seed))
	for i := 1; i <= hiddenRuinCount; i++ {
		x := r.Intn(480) + 10
		y := r.Intn(480) + 10
		if _, taken := w.index[point{x, y}]; taken {
			continue
		}
		w.add(Location{
			ID:       fmt.Sprintf("hidden_spot_%d", i),
			Name:     fmt.Sprintf("传说遗迹 #%d", i),
			X:        x,
			Y:        y,
			Kind:     KindDungeon,
			RecLevel: hiddenRuinBaseLevel + i*hiddenRuinLevelStep,
		})
	}
	return w
}

func (w *World) add(loc Location) {
	w.index[point{loc.X, loc.Y}] = len(w.Locations)
	w.Locations = append(w.Locations, loc)
}

// InBounds 坐标是否在地图内
func InBounds(x, y int) bool {
	return x >= 0 && x < MapSize && y >= 0 && y < MapSize
}

// LocationAt 坐标上的地点
func (w *World) LocationAt(x, y int) (Location, bool) {
	i, ok := w.index[point{x, y}]
	if !ok {
		return Location{}, false
	}
	return w.Locations[i], true
}

// Location 按ID查找地点
func (w *World) Location(id string) (Location, bool) {
	for _, loc := range w.Locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return Location{}, false
}

// Terrain 坐标上的地形，地图外视为山地
func (w *World) Terrain(x, y int) Terrain {
	if !InBounds(x, y) {
		return TerrainMountain
	}
	if loc, ok := w.LocationAt(x, y); ok {
		if loc.Kind == KindTown {
			return TerrainTown
		}
		return TerrainDungeon
	}
	if b := biome(x, y); b != "" {
		return b
	}
	return scatter(w.Seed, x, y)
}

// Passable 能否移动到该坐标
func (w *World) Passable(x, y int) bool {
	return w.Terrain(x, y).Passable()
}

// View 以 (cx, cy) 为中心的地形窗口，行优先
func (w *World) View(cx, cy, radius int) [][]Terrain {
	rows := make([][]Terrain, 0, radius*2+1)
	for y := cy - radius; y <= cy+radius; y++ {
		row := make([]Terrain, 0, radius*2+1)
		for x := cx - radius; x <= cx+radius; x++ {
			row = append(row, w.Terrain(x, y))
		}
		rows = append(rows, row)
	}
	return rows
}
