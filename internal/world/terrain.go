// terrain.go

package world

import (
	"encoding/binary"
	"hash/fnv"
)

// Terrain 地形
type Terrain string

const (
	TerrainGrass    Terrain = "grass"
	TerrainForest   Terrain = "forest"
	TerrainWater    Terrain = "water"
	TerrainMountain Terrain = "mountain"
	TerrainTown     Terrain = "town"
	TerrainDungeon  Terrain = "dungeon"
	TerrainSnow     Terrain = "snow"
	TerrainDesert   Terrain = "desert"
	TerrainVolcano  Terrain = "volcano"
)

// 散布地形的概率
const (
	forestRate   = 0.1
	mountainRate = 0.05
	waterRate    = 0.02
)

// Passable 是否可以通行
func (t Terrain) Passable() bool {
	return t != TerrainMountain
}

// Safe 是否为安全地带，不会遇敌
func (t Terrain) Safe() bool {
	return t == TerrainTown
}

// biome 大区域地形，不在任何区域时返回空
func biome(x, y int) Terrain {
	switch {
	case y > 400 && x < 100:
		return TerrainSnow
	case y < 100 && x > 400:
		return TerrainDesert
	case y > 400 && x > 400:
		return TerrainVolcano
	}
	return ""
}

// tileNoise 由种子和坐标得到 [0,1) 的确定值
func tileNoise(seed int64, x, y int, salt byte) float64 {
	h := fnv.New64a()
	var buf [25]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(x))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(y))
	buf[24] = salt
	h.Write(buf[:])
	return float64(h.Sum64()%1_000_000) / 1_000_000
}

// scatter 草原上散布的森林、山地和水域
func scatter(seed int64, x, y int) Terrain {
	switch {
	case tileNoise(seed, x, y, 'f') < forestRate:
		return TerrainForest
	case tileNoise(seed, x, y, 'm') < mountainRate:
		return TerrainMountain
	case tileNoise(seed, x, y, 'w') < waterRate:
		return TerrainWater
	}
	return TerrainGrass
}
