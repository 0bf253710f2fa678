package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gateway-identity/internal/dto"
	"gateway-identity/internal/service"
	pkgErrors "gateway-identity/pkg/responses"
)

// Seed 初始化数据：管理员账户与预注册应用
// 已存在的记录跳过，保证重复启动幂等
type Seed struct {
	Users []SeedUser `yaml:"users"`
	Apps  []SeedApp  `yaml:"apps"`
}

type SeedUser struct {
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	Email       string `yaml:"email"`
	DisplayName string `yaml:"display_name"`
	Role        string `yaml:"role"`
}

type SeedApp struct {
	AppID       string `yaml:"app_id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Load 读取seed文件
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取seed文件失败: %w", err)
	}

	s := &Seed{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("解析seed文件失败: %w", err)
	}
	return s, nil
}

// Apply 写入缺失的初始化数据
func Apply(ctx context.Context, s *Seed, userService service.UserService, appService service.AppService) error {
	for _, u := range s.Users {
		_, err := userService.Create(ctx, &dto.CreateUserRequest{
			Username:    u.Username,
			Password:    u.Password,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Role:        u.Role,
		})
		if err != nil && !errors.Is(err, pkgErrors.ErrRecordExists) {
			return fmt.Errorf("初始化用户 %s 失败: %w", u.Username, err)
		}
	}

	for _, a := range s.Apps {
		_, err := appService.Create(ctx, &dto.CreateAppRequest{
			AppID:       a.AppID,
			Name:        a.Name,
			Description: a.Description,
		})
		if err != nil && !errors.Is(err, pkgErrors.ErrRecordExists) {
			return fmt.Errorf("初始化应用 %s 失败: %w", a.AppID, err)
		}
	}

	return nil
}
