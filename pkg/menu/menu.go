// Package menu 实现主菜单的状态机：屏幕切换、选项选择、角色设置
//
// 状态机不依赖 ebiten，输入以 Event 的形式传入，MenuScene 负责把按键转换为事件并绘制。
package menu

// Screen 菜单所处的屏幕
type Screen int

const (
	MainMenu Screen = iota
	CharSetup
	Help
	// Play 与 Quit 是过渡状态，由拥有菜单的场景处理（进入游戏或退出）
	Play
	Quit
)

func (s Screen) String() string {
	switch s {
	case MainMenu:
		return "MAIN_MENU"
	case CharSetup:
		return "CHAR_SETUP"
	case Help:
		return "HELP"
	case Play:
		return "PLAY"
	case Quit:
		return "QUIT"
	}
	return "UNKNOWN"
}

// Option 菜单中的一个选项
// HasTarget 为 false 的选项没有直接的目标屏幕（如 Name、Gender）
type Option struct {
	Label     string
	Target    Screen
	HasTarget bool
}

func to(label string, target Screen) Option {
	return Option{Label: label, Target: target, HasTarget: true}
}

func plain(label string) Option {
	return Option{Label: label}
}

// Item 一个屏幕上的有序选项列表和当前选中项
type Item struct {
	Options  []Option
	Selected int
}

// Move 按 delta 移动选中项，首尾循环
func (it *Item) Move(delta int) {
	n := len(it.Options)
	if n == 0 {
		it.Selected = 0
		return
	}
	it.Selected = ((it.Selected+delta)%n + n) % n
}

// Current 返回当前选中的选项
func (it *Item) Current() Option {
	return it.Options[it.Selected]
}

// EventKind 菜单事件类型
type EventKind int

const (
	EventUp EventKind = iota
	EventDown
	EventLeft
	EventRight
	EventEnter
	EventBackspace
	EventChar
)

// Event 一次按键事件；EventChar 携带输入的字符
type Event struct {
	Kind EventKind
	Char rune
}

// 角色设置屏幕的选项标签
const (
	OptionName      = "Name"
	OptionGender    = "Gender"
	OptionStartGame = "Start Game"
	OptionBack      = "Back"
)

// HelpLines 帮助屏幕显示的操作说明
var HelpLines = []string{
	"Steer the falling trash into the right bin.",
	"Left / Right arrows move it sideways, Down drops it faster.",
	"Click the bars in the top-right corner to pause.",
	"Each bin takes three kinds of trash. Good luck!",
}

// Menu 菜单状态机
type Menu struct {
	Current Screen
	items   map[Screen]*Item
	setup   CharacterSetup
}

// New 创建停留在主菜单的状态机
func New() *Menu {
	return &Menu{
		Current: MainMenu,
		items: map[Screen]*Item{
			MainMenu: {Options: []Option{
				to("Play", CharSetup),
				to("Help", Help),
				to("Quit", Quit),
			}},
			CharSetup: {Options: []Option{
				plain(OptionName),
				plain(OptionGender),
				plain(OptionStartGame),
				to(OptionBack, MainMenu),
			}},
			Help: {Options: []Option{
				to(OptionBack, MainMenu),
			}},
		},
	}
}

// Item 返回指定屏幕的选项列表；Play 和 Quit 没有选项，返回 nil
func (m *Menu) Item(screen Screen) *Item {
	return m.items[screen]
}

// CurrentItem 返回当前屏幕的选项列表
func (m *Menu) CurrentItem() *Item {
	return m.items[m.Current]
}

// Setup 返回角色设置数据
func (m *Menu) Setup() *CharacterSetup {
	return &m.setup
}

// Handle 处理一次事件
func (m *Menu) Handle(ev Event) {
	item := m.CurrentItem()
	if item == nil {
		return
	}

	switch ev.Kind {
	case EventUp:
		item.Move(-1)
		return
	case EventDown:
		item.Move(1)
		return
	}

	if m.Current == CharSetup {
		m.handleCharSetup(item, ev)
		return
	}

	if ev.Kind == EventEnter {
		opt := item.Current()
		if opt.HasTarget {
			m.Current = opt.Target
		} else {
			m.Current = MainMenu
		}
	}
}

func (m *Menu) handleCharSetup(item *Item, ev Event) {
	opt := item.Current()

	if ev.Kind == EventEnter {
		switch {
		case opt.HasTarget:
			m.Current = opt.Target
		case opt.Label == OptionStartGame && m.setup.Name != "":
			m.Current = Play
		}
		return
	}

	switch opt.Label {
	case OptionName:
		switch ev.Kind {
		case EventBackspace:
			m.setup.Backspace()
		case EventChar:
			m.setup.AppendChar(ev.Char)
		}
	case OptionGender:
		switch ev.Kind {
		case EventLeft:
			m.setup.CycleGender(-1)
		case EventRight:
			m.setup.CycleGender(1)
		}
	}
}

// Tick 推进一帧（驱动名字输入光标闪烁）
func (m *Menu) Tick() {
	m.setup.Ticker = (m.setup.Ticker + 2) % 100
}

// CursorVisible 报告名字输入光标在本帧是否可见
func (m *Menu) CursorVisible() bool {
	item := m.Item(CharSetup)
	return m.setup.Ticker > 50 && item.Current().Label == OptionName
}
