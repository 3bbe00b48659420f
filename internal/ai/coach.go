package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Config holds the coach configuration.
type Config struct {
	APIKey    string
	ChatModel string
	Timeout   time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ChatModel: "gpt-4o-mini",
		Timeout:   30 * time.Second,
	}
}

// Coach is the AI study companion. Without an API key it runs degraded and
// serves only the canned Turkish fallbacks; generation errors are never
// surfaced to callers.
type Coach struct {
	client *openai.Client
	config *Config
	rnd    *rand.Rand
	logger *slog.Logger
}

// NewCoach creates a coach. A nil or keyless config disables generation.
func NewCoach(cfg *Config, rnd *rand.Rand, logger *slog.Logger) *Coach {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := &Coach{config: cfg, rnd: rnd, logger: logger}
	if cfg.APIKey != "" {
		c.client = openai.NewClient(cfg.APIKey)
	} else {
		logger.Warn("no API key configured, coach running with fallbacks only")
	}
	return c
}

// Enabled reports whether real generation is available.
func (c *Coach) Enabled() bool {
	return c.client != nil
}

// generate runs one chat completion. Any failure, including a disabled
// client, returns the fallback.
func (c *Coach) generate(ctx context.Context, systemPrompt, userPrompt, fallback string) string {
	if c.client == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   600,
		Temperature: 0.7,
	})
	if err != nil {
		c.logger.Warn("chat completion failed", "error", err)
		return fallback
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn("chat completion returned no choices")
		return fallback
	}
	return resp.Choices[0].Message.Content
}

// ExplainTopic produces a kid-friendly Turkish explanation of a topic.
func (c *Coach) ExplainTopic(ctx context.Context, subject, topic string) string {
	prompt := fmt.Sprintf(`Sen bir matematik mühendisi AI koçusun. 13 yaşındaki bir öğrenciye %s dersinden
%s konusunu açıklayacaksın.

Özellikler:
- Türkçe konuş
- Basit ve anlaşılır dil kullan
- Fenerbahçe ve futbol metaforları ekle
- Pozitif ve destekleyici ol
- Örneklerle açıkla
- Eğlenceli hale getir

Konu: %s
Ders: %s`, subject, topic, topic, subject)

	fallback := fmt.Sprintf("Şu an açıklama yapamıyorum, ama %s konusunu birlikte öğreneceğiz! 💪", topic)
	return c.generate(ctx,
		"Sen destekleyici bir matematik mühendisi AI koçusun. Türkçe konuşuyorsun ve Fenerbahçe taraftarısın.",
		prompt, fallback)
}

// StudyRecommendation turns progress data into personalized advice.
func (c *Coach) StudyRecommendation(ctx context.Context, progressData any) string {
	data, err := json.Marshal(progressData)
	if err != nil {
		data = []byte("{}")
	}

	prompt := fmt.Sprintf(`Sen bir matematik mühendisi AI koçusun. Öğrencinin çalışma verilerine bakarak
ona kişiselleştirilmiş öneriler vereceksin.

Veri: %s

Özellikler:
- Türkçe konuş
- Pozitif ve motivasyonel ol
- Somut ve uygulanabilir öneriler ver
- Fenerbahçe metaforları kullan
- Zayıf alanları önceliklendir
- Başarıları da överek öner`, data)

	fallback := "Bu hafta matematik ve Türkçe'ye odaklan. Fenerbahçe maçları gibi düzenli antrenman yap! ⚽"
	return c.generate(ctx, "Sen destekleyici bir matematik mühendisi AI koçusun.", prompt, fallback)
}

// ParentAssessment writes the weekly evaluation paragraph for the parents.
func (c *Coach) ParentAssessment(ctx context.Context, studentName string, weeklyData any) string {
	data, err := json.Marshal(weeklyData)
	if err != nil {
		data = []byte("{}")
	}

	prompt := fmt.Sprintf(`Sen bir AI eğitim koçu olarak %s'nın ebeveynleri için
haftalık değerlendirme raporu hazırlayacaksın.

Haftalık veri: %s

Değerlendirmende şunları belirt:
- Genel performans değerlendirmesi
- Güçlü yönler
- Gelişim alanları
- Somut öneriler
- LGS hedefine yönelik durum
- Ebeveyn desteği önerileri

Ton: Profesyonel ama sıcak
Dil: Türkçe`, studentName, data)

	fallback := fmt.Sprintf("%s bu hafta güzel bir çalışma sergiledi. Düzenli çalışmaya devam etmesi önemli.", studentName)
	return c.generate(ctx, "Sen profesyonel bir AI eğitim koçusun.", prompt, fallback)
}

// DailyGreeting picks a welcome line for the home page.
func (c *Coach) DailyGreeting(studentName string) string {
	greetings := []string{
		"Merhaba şampiyon! Bugün hangi konuları fethediyoruz? ⚽",
		fmt.Sprintf("Selam %s! Ben senin matematik mühendisi koçun. Hazır mısın? 🚀", studentName),
		"Forza Fenerbahçe! Bugün de sahada, yani çalışma masasında başarıya koşuyoruz! 💛💙",
		"Merhaba genç matematikçi! Bugün hangi problemleri çözüp gol atacağız? ⚽",
		"Selam! LGS 2026 yolculuğumuzda bugün bir adım daha atıyoruz! 🎯",
	}
	return greetings[c.rnd.Intn(len(greetings))]
}

// Encouragement picks a consolation line after a wrong answer.
func (c *Coach) Encouragement() string {
	encouragements := []string{
		"Hiç sorun değil! Hata yapmak öğrenmenin en güzel parçası. Tekrar deneyelim! 💪",
		"Fenerbahçe'de de penaltı kaçırırız bazen, ama vazgeçmeyiz! Sen de vazgeçme! ⚽",
		"Matematik mühendisi olarak söylüyorum: Her yanlış, doğruya giden yolda bir adım! 🚀",
		"Harika! Şimdi bu hatayı yaptığın için bu konuyu daha iyi öğreneceksin! 🌟",
		"Champion, bu sadece pratik! Forza FB ruhuyla devam ediyoruz! 💛💙",
	}
	return encouragements[c.rnd.Intn(len(encouragements))]
}

// ClubMotivation picks a Fenerbahçe-themed study line.
func (c *Coach) ClubMotivation() string {
	motivations := []string{
		"Tıpkı Fenerbahçe'nin sahada mücadele ettiği gibi, sen de derslerinde mücadele ediyorsun! 💛💙",
		"Alex de Souza nasıl ustaca paslar verirdiyse, sen de matematik problemlerini öyle çözüyorsun! ⚽",
		"Ülker Stadı'nın atmosferi gibi, çalışma alanın da enerji dolu! Forza FB! 🏟️",
		"Her doğru cevap bir gol, her çalışma seansı bir antrenman! Şampiyonluk yolundayız! 🏆",
		"Fenerbahçe ruhu: Asla vazgeçmemek! Sen de LGS yolunda asla vazgeçmeyeceksin! 💪",
	}
	return motivations[c.rnd.Intn(len(motivations))]
}
