// model.go

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/battle"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/session"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/storage"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/world"
)

// 界面模式
type mode int

const (
	modeExplore mode = iota
	modeBattle
	modeSkill
	modeShop
	modeQuests
	modeAllocate
	modeFuse
)

const (
	// MonsterTurnDelay 怪物回合的停顿
	MonsterTurnDelay = 600 * time.Millisecond
	mapRadius        = 6
	maxLogLines      = 8
)

// allocatable 分配模式下按数字键选择的属性
var allocatable = []string{
	models.StatAttack, models.StatDefense, models.StatAgility,
	models.StatLuck, models.StatVirtue, models.StatHP,
}

// continueMsg 怪物回合停顿结束
type continueMsg struct{}

// savedMsg 存档完成
type savedMsg struct {
	Err error
}

// Model 单机客户端的界面状态
type Model struct {
	Session *session.Session
	Store   storage.SaveStore
	Board   storage.Leaderboard

	Quitting bool
	Waiting  bool
	Spinner  spinner.Model
	Log      []string
	Err      error

	mode      mode
	fuseFirst string
	delay     time.Duration
}

// NewModel 创建界面模型
func NewModel(s *session.Session, store storage.SaveStore, board storage.Leaderboard) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		Session: s,
		Store:   store,
		Board:   board,
		Spinner: sp,
		delay:   MonsterTurnDelay,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Waiting {
			return m, nil
		}
		m.Err = nil
		return m.handleKey(key)
	case continueMsg:
		m.Waiting = false
		return m.act(battle.Action{Kind: battle.ActionContinue})
	case savedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
		} else {
			m.addLog("已保存")
		}
	case spinner.TickMsg:
		if m.Waiting {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeBattle:
		return m.battleKey(key)
	case modeSkill:
		return m.skillKey(key)
	case modeShop, modeQuests, modeAllocate, modeFuse:
		if key == "esc" {
			m.mode = modeExplore
			m.fuseFirst = ""
			return m, nil
		}
		return m.menuKey(key)
	}
	return m.exploreKey(key)
}

func (m Model) exploreKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		m.Quitting = true
		return m, tea.Quit
	case "up", "k":
		return m.move(0, -1)
	case "down", "j":
		return m.move(0, 1)
	case "left", "h":
		return m.move(-1, 0)
	case "right", "l":
		return m.move(1, 0)
	case "e":
		events, err := m.Session.EnterDungeon()
		return m.battleStarted(events, err)
	case "B":
		events, err := m.Session.ChallengeBoss()
		return m.battleStarted(events, err)
	case "i":
		cost, err := m.Session.Inn()
		m.report(err, "在旅馆休息，花费 %d 金币", cost)
	case "f":
		item, cost, err := m.Session.Forge()
		m.report(err, "锻造完成: %s 攻击+%d，花费 %d 金币", item.Name, item.Bonus.Attack, cost)
	case "p":
		m.mode = modeShop
	case "o":
		m.mode = modeQuests
	case "u":
		m.mode = modeAllocate
	case "F":
		m.mode = modeFuse
	case "s":
		return m, m.save()
	}
	return m, nil
}

func (m Model) move(dx, dy int) (tea.Model, tea.Cmd) {
	res, err := m.Session.Move(dx, dy)
	if err != nil {
		m.Err = err
		return m, nil
	}
	for _, msg := range res.Messages {
		m.addLog(msg)
	}
	if len(res.Events) > 0 {
		return m.battleStarted(res.Events, nil)
	}
	return m, nil
}

func (m Model) battleStarted(events []battle.Event, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.Err = err
		return m, nil
	}
	m.mode = modeBattle
	return m.applyEvents(events)
}

func (m Model) battleKey(key string) (tea.Model, tea.Cmd) {
	b := m.Session.Battle()
	if b == nil {
		m.mode = modeExplore
		return m, nil
	}
	var a battle.Action
	switch {
	case b.Phase() == battle.PhaseEncounter && key == "y":
		a.Kind = battle.ActionFight
	case b.Phase() == battle.PhaseEncounter && key == "n":
		a.Kind = battle.ActionWalkAway
	case key == "1":
		a.Kind = battle.ActionAttack
	case key == "2":
		m.mode = modeSkill
		return m, nil
	case key == "3":
		a.Kind = battle.ActionDefend
	case key == "4":
		a.Kind = battle.ActionFlee
	default:
		return m, nil
	}
	return m.act(a)
}

func (m Model) skillKey(key string) (tea.Model, tea.Cmd) {
	if key == "esc" {
		m.mode = modeBattle
		return m, nil
	}
	b := m.Session.Battle()
	if b == nil {
		m.mode = modeExplore
		return m, nil
	}
	idx, ok := digit(key)
	skills := b.UsableSkills()
	if !ok || idx >= len(skills) {
		return m, nil
	}
	m.mode = modeBattle
	return m.act(battle.Action{Kind: battle.ActionSkill, SkillID: skills[idx].ID})
}

func (m Model) act(a battle.Action) (tea.Model, tea.Cmd) {
	events, err := m.Session.Act(a)
	if err != nil {
		m.Err = err
		return m, nil
	}
	return m.applyEvents(events)
}

// applyEvents 记录战斗事件，怪物回合时等待后自动继续
func (m Model) applyEvents(events []battle.Event) (tea.Model, tea.Cmd) {
	for _, e := range events {
		if e.Message != "" {
			m.addLog(e.Message)
		}
	}
	b := m.Session.Battle()
	if b == nil {
		m.mode = modeExplore
		return m, nil
	}
	if b.Phase() == battle.PhaseMonsterTurn {
		m.Waiting = true
		return m, tea.Batch(m.Spinner.Tick, tea.Tick(m.delay, func(time.Time) tea.Msg {
			return continueMsg{}
		}))
	}
	return m, nil
}

func (m Model) menuKey(key string) (tea.Model, tea.Cmd) {
	idx, ok := digit(key)
	if !ok {
		return m, nil
	}
	switch m.mode {
	case modeShop:
		shop := m.Session.Catalog().Shop
		if idx >= len(shop) {
			return m, nil
		}
		item, cost, err := m.Session.Buy(shop[idx].ID)
		m.report(err, "购买了 %s，花费 %d 金币", item.Name, cost)
	case modeQuests:
		quests := m.Session.Quests()
		if idx >= len(quests) {
			return m, nil
		}
		err := m.Session.AcceptQuest(quests[idx].ID)
		m.report(err, "接受任务: %s", quests[idx].Title)
	case modeAllocate:
		if idx >= len(allocatable) {
			return m, nil
		}
		err := m.Session.Allocate(allocatable[idx])
		m.report(err, "分配属性点: %s", allocatable[idx])
	case modeFuse:
		skills := m.Session.Status().Player.AllSkills()
		if idx >= len(skills) {
			return m, nil
		}
		if m.fuseFirst == "" {
			m.fuseFirst = skills[idx].ID
			return m, nil
		}
		first := m.fuseFirst
		m.fuseFirst = ""
		m.mode = modeExplore
		skill, cost, err := m.Session.Fuse(first, skills[idx].ID)
		m.report(err, "融合得到 %s，花费 %d 金币", skill.Name, cost)
	}
	return m, nil
}

func (m Model) save() tea.Cmd {
	s, store, board := m.Session, m.Store, m.Board
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return savedMsg{Err: s.Save(ctx, store, board)}
	}
}

func (m *Model) report(err error, format string, args ...any) {
	if err != nil {
		m.Err = err
		return
	}
	m.addLog(fmt.Sprintf(format, args...))
}

func (m *Model) addLog(line string) {
	m.Log = append(m.Log, line)
	if len(m.Log) > maxLogLines {
		m.Log = m.Log[len(m.Log)-maxLogLines:]
	}
}

// digit 把 1-9 转为下标
func digit(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '1'), true
}

func (m Model) View() string {
	if m.Quitting {
		return "再见\n"
	}
	var sb strings.Builder
	st := m.Session.Status()
	p := st.Player
	total := p.TotalStats()

	sb.WriteString("-- 像素冒险 --\n")
	fmt.Fprintf(&sb, "%s Lv%d  HP %d/%d  EXP %d/%d  金币 %d  点数 %d\n",
		p.Name, p.Level, p.HP, p.MaxHP, p.Exp, p.NextLevelExp, p.Gold, p.StatusPoints)
	fmt.Fprintf(&sb, "攻 %d 防 %d 敏 %d 运 %d 德 %d  位置 (%d,%d) %s\n",
		total.Attack, total.Defense, total.Agility, total.Luck, total.Virtue, st.X, st.Y, st.Terrain)
	if st.Location != nil {
		fmt.Fprintf(&sb, "[%s]\n", st.Location.Name)
	}
	sb.WriteString("\n")

	switch m.mode {
	case modeBattle, modeSkill:
		m.battleView(&sb)
	case modeShop:
		sb.WriteString("商店 (数字购买, esc 返回)\n")
		for i, it := range m.Session.Catalog().Shop {
			fmt.Fprintf(&sb, " %d. %s (%s) %d 金币\n", i+1, it.Name, it.Slot, p.AdjustedCost(it.Price))
		}
	case modeQuests:
		sb.WriteString("任务 (数字接受, esc 返回)\n")
		for i, q := range m.Session.Quests() {
			if i >= 9 {
				break
			}
			fmt.Fprintf(&sb, " %d. %s %d/%d %s\n", i+1, q.Title, q.CurrentCount, q.RequiredCount, questState(q))
		}
	case modeAllocate:
		sb.WriteString("分配属性点 (esc 返回)\n")
		for i, stat := range allocatable {
			fmt.Fprintf(&sb, " %d. %s\n", i+1, stat)
		}
	case modeFuse:
		fmt.Fprintf(&sb, "技能融合 %d 金币 (选择两个技能, esc 返回)\n", m.Session.FusionCost())
		for i, s := range p.AllSkills() {
			if i >= 9 {
				break
			}
			marker := " "
			if s.ID == m.fuseFirst {
				marker = "*"
			}
			fmt.Fprintf(&sb, "%s%d. %s\n", marker, i+1, s.Name)
		}
	default:
		sb.WriteString(renderMap(m.Session.World(), st.X, st.Y))
		sb.WriteString("方向键移动  i旅馆 p商店 f锻造 F融合 o任务 u加点 e地下城 B首领 s保存 q退出\n")
	}

	sb.WriteString("\n")
	for _, line := range m.Log {
		sb.WriteString(line + "\n")
	}
	if m.Err != nil {
		fmt.Fprintf(&sb, "错误: %v\n", m.Err)
	}
	return sb.String()
}

func (m Model) battleView(sb *strings.Builder) {
	b := m.Session.Battle()
	if b == nil {
		return
	}
	mon := b.Monster()
	fmt.Fprintf(sb, "%s Lv%d  HP %d/%d  %s\n", mon.Name, mon.Level, mon.HP, mon.MaxHP, mon.Element.Label())
	switch {
	case m.Waiting:
		fmt.Fprintf(sb, "%s 怪物行动中...\n", m.Spinner.View())
	case b.Phase() == battle.PhaseEncounter:
		sb.WriteString("对手等级远高于你，是否迎战？ [y] 迎战  [n] 离开\n")
	case m.mode == modeSkill:
		sb.WriteString("选择技能 (esc 返回)\n")
		for i, s := range b.UsableSkills() {
			fmt.Fprintf(sb, " %d. %s MP%d\n", i+1, s.Name, s.MPCost)
		}
	default:
		sb.WriteString("[1] 攻击  [2] 技能  [3] 防御  [4] 逃跑\n")
	}
}

func questState(q models.Quest) string {
	switch {
	case q.IsCompleted:
		return "已完成"
	case q.IsAccepted:
		return "进行中"
	}
	return ""
}

var glyphs = map[world.Terrain]rune{
	world.TerrainGrass:    '.',
	world.TerrainForest:   '♣',
	world.TerrainWater:    '~',
	world.TerrainMountain: '^',
	world.TerrainTown:     'T',
	world.TerrainDungeon:  'D',
	world.TerrainSnow:     '*',
	world.TerrainDesert:   ':',
	world.TerrainVolcano:  '%',
}

// renderMap 以玩家为中心的地图
func renderMap(w *world.World, x, y int) string {
	var sb strings.Builder
	for dy, row := range w.View(x, y, mapRadius) {
		for dx, t := range row {
			switch {
			case dx == mapRadius && dy == mapRadius:
				sb.WriteRune('@')
			case !world.InBounds(x+dx-mapRadius, y+dy-mapRadius):
				sb.WriteRune(' ')
			default:
				g, ok := glyphs[t]
				if !ok {
					g = '?'
				}
				sb.WriteRune(g)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
