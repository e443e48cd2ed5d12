package menu

// MaxNameLength 名字最多字符数
const MaxNameLength = 15

// Genders 可选性别，左右方向键循环切换
var Genders = [...]string{"Boy", "Girl"}

// CharacterSetup 角色设置：名字、性别和光标闪烁计数
type CharacterSetup struct {
	Name         string
	GenderChoice int
	Ticker       int
}

// Gender 返回当前选择的性别
func (c *CharacterSetup) Gender() string {
	return Genders[c.GenderChoice]
}

// AppendChar 追加一个可打印 ASCII 字符，名字已满或字符不可打印时返回 false
func (c *CharacterSetup) AppendChar(r rune) bool {
	if !IsPrintableASCII(r) || len(c.Name) >= MaxNameLength {
		return false
	}
	c.Name += string(r)
	return true
}

// Backspace 删除名字的最后一个字符
func (c *CharacterSetup) Backspace() {
	if c.Name != "" {
		c.Name = c.Name[:len(c.Name)-1]
	}
}

// CycleGender 按 delta 切换性别，首尾循环
func (c *CharacterSetup) CycleGender(delta int) {
	n := len(Genders)
	c.GenderChoice = ((c.GenderChoice+delta)%n + n) % n
}

// IsPrintableASCII 报告 r 是否为可打印 ASCII 字符（含空格）
func IsPrintableASCII(r rune) bool {
	return r >= 0x20 && r <= 0x7e
}
