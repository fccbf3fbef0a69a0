package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

// 音频资源 ID
// 与 assets/config/resources.yaml 中的条目一一对应
const (
	SoundFire            = "SOUND_FIRE"
	SoundExplosionLarge  = "SOUND_EXPLOSION_LARGE"
	SoundExplosionMedium = "SOUND_EXPLOSION_MEDIUM"
	SoundExplosionSmall  = "SOUND_EXPLOSION_SMALL"
	SoundShipHit         = "SOUND_SHIP_HIT"
	SoundRespawn         = "SOUND_RESPAWN"
	SoundKnock           = "SOUND_KNOCK"
	SoundWaveStart       = "SOUND_WAVE_START"
	SoundWaveClear       = "SOUND_WAVE_CLEAR"
	SoundSaucerWarn      = "SOUND_SAUCER_WARN"
	SoundSaucerExplosion = "SOUND_SAUCER_EXPLOSION"
	SoundBeam            = "SOUND_BEAM"
	SoundPowerUpDrop     = "SOUND_POWERUP_DROP"
	SoundPowerUpPickup   = "SOUND_POWERUP_PICKUP"
	SoundExtraLife       = "SOUND_EXTRA_LIFE"
	SoundGameOver        = "SOUND_GAMEOVER"
	SoundMenuSelect      = "SOUND_MENU_SELECT"

	MusicMenu = "MUSIC_MENU"
	MusicGame = "MUSIC_GAME"
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效和背景音乐的播放
//   - 订阅事件总线，把模拟事件转成音效
//   - 实现音量控制（从 SettingsManager 读取设置）
//
// 音效播放是阅后即焚的：每次播放从解码好的 PCM 数据创建一个新播放器，
// 同一音效的连续触发自然叠加混音。资源尚未解码完成时本次触发被跳过，
// 解码失败时播放占位提示音。
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager

	currentMusic   *audio.Player
	currentMusicID string
}

// NewAudioManager 创建新的音频管理器
// sm 可为 nil（无设置联动，使用默认音量）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
	}
}

// Settings 返回挂接的设置管理器，可能为 nil
func (am *AudioManager) Settings() *SettingsManager {
	return am.settingsManager
}

// AttachBus 订阅事件总线上的模拟事件
// 场景创建总线后调用一次；场景切换时由 bus.Clear() 解除订阅
func (am *AudioManager) AttachBus(bus *ecs.EventBus) {
	ecs.Subscribe(bus, func(BulletFiredEvent) {
		am.PlaySound(SoundFire)
	})
	ecs.Subscribe(bus, func(e AsteroidDestroyedEvent) {
		switch e.Tier {
		case types.TierLarge:
			am.PlaySound(SoundExplosionLarge)
		case types.TierMedium:
			am.PlaySound(SoundExplosionMedium)
		default:
			am.PlaySound(SoundExplosionSmall)
		}
	})
	ecs.Subscribe(bus, func(ShipDestroyedEvent) {
		am.PlaySound(SoundShipHit)
	})
	ecs.Subscribe(bus, func(ShipSpawnedEvent) {
		am.PlaySound(SoundRespawn)
	})
	ecs.Subscribe(bus, func(ShipKnockedEvent) {
		am.PlaySound(SoundKnock)
	})
	ecs.Subscribe(bus, func(WaveStartedEvent) {
		am.PlaySound(SoundWaveStart)
	})
	ecs.Subscribe(bus, func(WaveClearedEvent) {
		am.PlaySound(SoundWaveClear)
	})
	ecs.Subscribe(bus, func(SaucerSpawnedEvent) {
		am.PlaySound(SoundSaucerWarn)
	})
	ecs.Subscribe(bus, func(SaucerDestroyedEvent) {
		am.PlaySound(SoundSaucerExplosion)
	})
	ecs.Subscribe(bus, func(BeamThrowEvent) {
		am.PlaySound(SoundBeam)
	})
	ecs.Subscribe(bus, func(PowerUpDroppedEvent) {
		am.PlaySound(SoundPowerUpDrop)
	})
	ecs.Subscribe(bus, func(e PowerUpCollectedEvent) {
		if e.Kind == types.PowerUpExtraLife {
			am.PlaySound(SoundExtraLife)
		} else {
			am.PlaySound(SoundPowerUpPickup)
		}
	})
	ecs.Subscribe(bus, func(GameOverEvent) {
		am.PlaySound(SoundGameOver)
	})
}

// PlaySound 播放一次音效
// 资源未就绪时跳过本次触发；返回是否实际开始播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.resourceManager.NewSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	player.Play()
	return true
}

// PlayMusic 播放背景音乐（循环）
// 同一时间只播放一首；重复请求当前曲目是空操作。曲目尚未解码完成时
// 返回 false，场景在后续帧重试即可
func (am *AudioManager) PlayMusic(musicID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		return false
	}

	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	player, err := am.resourceManager.NewMusicPlayer(musicID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to start music %s: %v", musicID, err)
		return false
	}
	if player == nil {
		return false
	}

	am.StopMusic()

	player.SetVolume(am.getMusicVolume())
	player.Play()

	am.currentMusic = player
	am.currentMusicID = musicID

	log.Printf("[AudioManager] Playing music: %s", musicID)
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// PauseMusic 暂停当前背景音乐
func (am *AudioManager) PauseMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
	}
}

// ResumeMusic 恢复当前背景音乐
func (am *AudioManager) ResumeMusic() {
	if am.currentMusic == nil || am.currentMusicID == "" {
		return
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		return
	}
	am.currentMusic.Play()
}

// SetMusicVolume 设置音乐音量并立即应用到当前曲目
func (am *AudioManager) SetMusicVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetMusicVolume(volume)
	}
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(am.getMusicVolume())
	}
}

// SetSoundVolume 设置音效音量，影响后续播放的所有音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// getMusicVolume 获取音乐音量设置
func (am *AudioManager) getMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return 0.6
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}
