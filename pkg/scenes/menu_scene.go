package scenes

import (
	"github.com/charmbracelet/log"
	"github.com/decker502/earthday/pkg/config"
	"github.com/decker502/earthday/pkg/leaderboard"
	"github.com/decker502/earthday/pkg/menu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// menuKeys 菜单响应的按键与事件的对应关系
var menuKeys = []struct {
	key  ebiten.Key
	kind menu.EventKind
}{
	{ebiten.KeyArrowUp, menu.EventUp},
	{ebiten.KeyArrowDown, menu.EventDown},
	{ebiten.KeyArrowLeft, menu.EventLeft},
	{ebiten.KeyArrowRight, menu.EventRight},
	{ebiten.KeyEnter, menu.EventEnter},
	{ebiten.KeyNumpadEnter, menu.EventEnter},
	{ebiten.KeyBackspace, menu.EventBackspace},
}

// MenuScene 主菜单场景：主菜单、角色设置、帮助三个屏幕
//
// 把 ebiten 的按键状态转换为 menu.Event 交给状态机；
// 状态机进入 PLAY 时开始游戏，进入 QUIT 时请求退出。
type MenuScene struct {
	services *Services
	menu     *menu.Menu

	logo       *ebiten.Image // 可为 nil（图片缺失时不绘制）
	optionFace *text.GoTextFace
	helpFace   *text.GoTextFace

	logger *log.Logger
}

// NewMenuScene 创建主菜单场景
func NewMenuScene(s *Services) (*MenuScene, error) {
	logger := log.WithPrefix("MenuScene")
	rm := s.Resources

	optionFace, err := rm.LoadFont(s.Config.Assets.Font, config.MenuFontNormal)
	if err != nil {
		return nil, err
	}
	helpFace, err := rm.LoadFont(s.Config.Assets.Font, config.MenuFontSmall)
	if err != nil {
		return nil, err
	}

	logo, err := rm.LoadImage(s.Config.Assets.Logo)
	if err != nil {
		logger.Warn("logo unavailable", "err", err)
		logo = nil
	}

	return &MenuScene{
		services:   s,
		menu:       menu.New(),
		logo:       logo,
		optionFace: optionFace,
		helpFace:   helpFace,
		logger:     logger,
	}, nil
}

// Menu 返回菜单状态机
func (m *MenuScene) Menu() *menu.Menu {
	return m.menu
}

// Update 读取本帧的按键并推进菜单
func (m *MenuScene) Update(deltaTime float64) {
	m.HandleEvents(collectMenuEvents())
}

// HandleEvents 处理一帧的菜单事件，然后处理 PLAY/QUIT 过渡状态
func (m *MenuScene) HandleEvents(events []menu.Event) {
	if m.menu.Current != menu.Play && m.menu.Current != menu.Quit {
		for _, ev := range events {
			m.menu.Handle(ev)
		}
		m.menu.Tick()
	}

	switch m.menu.Current {
	case menu.Play:
		setup := m.menu.Setup()
		player := leaderboard.User{Name: setup.Name, Gender: setup.Gender()}
		if err := m.services.SceneManager.EnterGame(player); err != nil {
			m.logger.Error("cannot start game", "err", err)
			m.menu.Current = menu.CharSetup
		}
	case menu.Quit:
		m.services.SceneManager.RequestQuit()
	}
}

// collectMenuEvents 把刚按下的按键和输入的字符转换为菜单事件
func collectMenuEvents() []menu.Event {
	var events []menu.Event
	for _, mk := range menuKeys {
		if inpututil.IsKeyJustPressed(mk.key) {
			events = append(events, menu.Event{Kind: mk.kind})
		}
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		events = append(events, menu.Event{Kind: menu.EventChar, Char: r})
	}
	return events
}

// Draw 绘制当前屏幕
func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.ClearColor)

	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	cx, cy := w/2, h/2

	switch m.menu.Current {
	case menu.CharSetup:
		m.drawCharSetup(screen, cx, cy)
	case menu.Help:
		m.drawOptions(screen, m.menu.Item(menu.Help), cx-55, cy-55, false)
		for i, line := range menu.HelpLines {
			m.drawText(screen, m.helpFace, line, cx-w/4, cy+float64(i+1)*config.MenuLineHeight)
		}
	default:
		m.drawOptions(screen, m.menu.Item(menu.MainMenu), cx-55, cy-55, false)
	}

	m.drawLogo(screen, w, h)
}

func (m *MenuScene) drawCharSetup(screen *ebiten.Image, cx, cy float64) {
	item := m.menu.Item(menu.CharSetup)
	setup := m.menu.Setup()
	selected := item.Current().Label

	nameLabel := "Name:"
	if selected == menu.OptionName {
		nameLabel = "> Name:"
	}
	m.drawText(screen, m.optionFace, nameLabel, cx-150, cy-50)

	name := setup.Name
	if m.menu.CursorVisible() {
		name += "_"
	}
	m.drawText(screen, m.optionFace, name, cx+20, cy-50)

	m.drawText(screen, m.optionFace, "Are you a:", cx-150, cy-10)
	if selected == menu.OptionGender {
		m.drawText(screen, m.optionFace, ">", cx-150, cy+40)
	}
	m.drawText(screen, m.optionFace, " "+setup.Gender(), cx-130, cy+40)

	m.drawOptions(screen, item, cx-150, cy+100, true)
}

// drawOptions 逐行绘制选项，选中项前加 "> "
// skipInline 为 true 时跳过 Name、Gender 这类在别处单独绘制的选项
func (m *MenuScene) drawOptions(screen *ebiten.Image, item *menu.Item, x, y float64, skipInline bool) {
	for i, opt := range item.Options {
		if skipInline && !opt.HasTarget && opt.Label != menu.OptionStartGame {
			continue
		}
		label := opt.Label
		if i == item.Selected {
			label = "> " + label
		}
		m.drawText(screen, m.optionFace, label, x+float64(i), y+float64(i)*config.MenuLineHeight)
	}
}

// drawLogo 把 logo 等比缩放到宽为窗口一半、高为窗口高度的框内，水平居中于上四分之一处
func (m *MenuScene) drawLogo(screen *ebiten.Image, w, h float64) {
	if m.logo == nil {
		return
	}
	lb := m.logo.Bounds()
	lw, lh := AspectFit(float64(lb.Dx()), float64(lb.Dy()), w/2, h)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(lw/float64(lb.Dx()), lh/float64(lb.Dy()))
	op.GeoM.Translate(w/2-lw/2, h/4-lh/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(m.logo, op)
}

func (m *MenuScene) drawText(screen *ebiten.Image, face *text.GoTextFace, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(config.MenuTextColor)
	text.Draw(screen, s, face, op)
}

// AspectFit 返回把 iw×ih 的图片等比缩放到 bw×bh 框内后的尺寸
func AspectFit(iw, ih, bw, bh float64) (float64, float64) {
	if iw <= 0 || ih <= 0 {
		return 0, 0
	}
	scale := bw / iw
	if ih*scale > bh {
		scale = bh / ih
	}
	return iw * scale, ih * scale
}
