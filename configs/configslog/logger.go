package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış loglama için global zap logger.
// SLog ise printf tarzı kullanımlar için sugared versiyonu.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger uygulama loggerını başlatır. APP_ENV=production ise JSON,
// aksi halde geliştirme (console) formatı kullanılır.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.DisableStacktrace = true

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logger kurulamazsa uygulama çalışamaz.
		panic("zap logger başlatılamadı: " + err.Error())
	}
	Log = logger
	SLog = logger.Sugar()
}

// Sync tamponlanmış log kayıtlarını diske yazar (kapanışta çağrılır).
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func init() {
	// Testler ve erken loglama için varsayılan logger; main içinde
	// InitLogger ile yeniden yapılandırılır.
	if Log == nil {
		InitLogger()
	}
}
