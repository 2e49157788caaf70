// quest.go

package models

// Quest 任务模型
type Quest struct {
	ID                 int    `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	TargetMonsterLevel int    `json:"target_monster_level"`
	RequiredCount      int    `json:"required_count"`
	RewardGold         int    `json:"reward_gold"`
	RewardExp          int    `json:"reward_exp"`

	// 以下字段随进度变化
	CurrentCount int  `json:"current_count"`
	IsAccepted   bool `json:"is_accepted"`
	IsCompleted  bool `json:"is_completed"`
}

// Matches 怪物等级是否计入该任务
func (q *Quest) Matches(monsterLevel, tolerance int) bool {
	diff := monsterLevel - q.TargetMonsterLevel
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// Progress 记一次讨伐，返回这一次是否刚好完成
func (q *Quest) Progress() bool {
	if !q.IsAccepted || q.IsCompleted {
		return false
	}
	q.CurrentCount++
	if q.CurrentCount >= q.RequiredCount {
		q.CurrentCount = q.RequiredCount
		q.IsCompleted = true
		return true
	}
	return false
}
