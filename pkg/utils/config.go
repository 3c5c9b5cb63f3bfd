package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	OTP      OTPConfig
	Shipping ShippingConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	Debug       bool
	LogPath     string
	UploadDir   string
	FrontendURL string
}

type DatabaseConfig struct {
	LocalURI string
	AtlasURI string
	Name     string
}

// URI picks the connection string for the current environment
func (d DatabaseConfig) URI(env string) string {
	if env == "production" && d.AtlasURI != "" {
		return d.AtlasURI
	}
	return d.LocalURI
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type OTPConfig struct {
	ExpiryMinutes int
	Length        int
}

type ShippingConfig struct {
	ExpressFee float64
}

type CORSConfig struct {
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "naturehatch-backend")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("UPLOAD_DIR", "uploads/")
	viper.SetDefault("MONGO_LOCAL_URI", "mongodb://localhost:27017")
	viper.SetDefault("DB_NAME", "naturehatch")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("EXPRESS_SHIPPING_FEE", 50.0)
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:5174"})

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional, env vars still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Env:         viper.GetString("APP_ENV"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			UploadDir:   viper.GetString("UPLOAD_DIR"),
			FrontendURL: viper.GetString("FRONTEND_URL"),
		},
		Database: DatabaseConfig{
			LocalURI: viper.GetString("MONGO_LOCAL_URI"),
			AtlasURI: viper.GetString("MONGO_ATLAS_URI"),
			Name:     viper.GetString("DB_NAME"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: viper.GetInt("OTP_EXPIRY_MINUTES"),
			Length:        viper.GetInt("OTP_LENGTH"),
		},
		Shipping: ShippingConfig{
			ExpressFee: viper.GetFloat64("EXPRESS_SHIPPING_FEE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("ALLOWED_ORIGINS"),
		},
	}

	return config, nil
}
