package config

// SafeErrorMessage release 模式下返回 fallback，不向客户端暴露内部错误详情；
// 其余模式（或配置未加载）返回 err.Error() 便于调试。
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
