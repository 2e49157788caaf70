// rand.go

package battle

import (
	"math/rand"
	"time"
)

// Rand 战斗使用的随机源
// *rand.Rand 满足该接口，测试中可以替换为固定序列
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand 创建随机源，seed 为0时使用当前时间
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
