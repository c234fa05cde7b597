package converter

import (
	"fmt"

	"github.com/liuzl/gocc"
	"go.uber.org/zap"
)

// openCCConverter 是 TextConverter 的一个实现
type openCCConverter struct {
	converter *gocc.OpenCC
	logger    *zap.Logger
}

// NewOpenCCConverter 初始化并返回一个 OpenCC 转换器实例
func NewOpenCCConverter(logger *zap.Logger) (TextConverter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	// 初始化转换器：t2s.json 代表 Traditional Chinese to Simplified Chinese
	converter, err := gocc.New("t2s")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenCC converter: %w", err)
	}
	logger.Debug("OpenCC converter (t2s) initialized")
	return &openCCConverter{converter: converter, logger: logger}, nil
}

// TradToSim 将繁体中文转换为简体
func (c *openCCConverter) TradToSim(text string) string {
	if c.converter == nil || text == "" {
		return text
	}
	out, err := c.converter.Convert(text)
	if err != nil {
		c.logger.Warn("Failed to convert text from Traditional to Simplified", zap.Error(err))
		return text // 在转换失败时返回原文
	}
	return out
}
