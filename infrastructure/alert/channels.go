package alert

import (
	"fmt"
	"log"
	"os"
)

// LogChannel 日志告警通道
type LogChannel struct {
	logger *log.Logger
	name   string
}

// NewLogChannel 创建日志告警通道
func NewLogChannel(name string, output *os.File) *LogChannel {
	if output == nil {
		output = os.Stdout
	}
	return &LogChannel{
		logger: log.New(output, "[ALERT] ", log.LstdFlags),
		name:   name,
	}
}

// Send 发送告警到日志
func (c *LogChannel) Send(alert Alert) error {
	msg := fmt.Sprintf("[%s] %s %s", alert.Level, alert.InstrumentID, alert.Message)
	if len(alert.Fields) > 0 {
		msg += " |"
		for k, v := range alert.Fields {
			msg += fmt.Sprintf(" %s=%v", k, v)
		}
	}
	c.logger.Println(msg)
	return nil
}

// Name 返回通道名称
func (c *LogChannel) Name() string {
	return c.name
}

// FuncChannel 回调通道，测试与自定义分发用。
type FuncChannel struct {
	name string
	fn   func(Alert) error
}

// NewFuncChannel 创建回调通道
func NewFuncChannel(name string, fn func(Alert) error) *FuncChannel {
	return &FuncChannel{name: name, fn: fn}
}

// Send 调用回调
func (c *FuncChannel) Send(alert Alert) error { return c.fn(alert) }

// Name 返回通道名称
func (c *FuncChannel) Name() string { return c.name }
