package curriculum

import "fmt"

// mebCurriculum is the 8th grade MEB topic list per subject.
var mebCurriculum = map[string][]string{
	"Matematik": {
		"Çarpanlar ve Katlar",
		"Üslü İfadeler",
		"Kareköklü İfadeler",
		"Cebirsel İfadeler",
		"Doğrusal Denklemler ve Eşitsizlikler",
		"Üçgenler",
		"Dönüşüm Geometrisi",
		"Eşlik ve Benzerlik",
		"Geometrik Cisimler",
		"Veri Analizi ve İstatistik",
	},
	"Türkçe": {
		"Erdemler (zorunlu)",
		"Millî Kültürümüz (zorunlu)",
		"Millî Mücadele ve Atatürk (zorunlu)",
		"Birey ve Toplum",
		"Okuma Kültürü",
		"Kişisel Gelişim",
		"Bilim ve Teknoloji",
		"Çocuk Dünyası",
	},
	"Fen Bilimleri": {
		"DNA ve Genetik Kod",
		"Basit Makineler",
		"Enerji Dönüşümleri ve Çevre Bilimi",
		"Basınç",
		"Madde ve Endüstri",
	},
	"T.C. İnkılap Tarihi": {
		"Bir Kahraman Doğuyor",
		"Millî Uyanış: Yurdumuzun İşgaline Tepkiler",
		"Ya İstiklal Ya Ölüm!",
		"Çağdaş Türkiye Yolunda Adımlar",
		"Atatürkçülük ve Çağdaşlaşan Türkiye",
		"Demokratikleşme Çabaları",
		"Atatürkün Ölümü ve Sonrası",
	},
	"Din Kültürü": {
		"Kader İnancı",
		"Zekât ve Sadaka",
		"Din ve Hayat",
		"Hz. Muhammedin Örnekliği",
		"Kuran-ı Kerim ve Özellikleri",
	},
	"İngilizce": {
		"Friendship",
		"Teen Life",
		"In the Kitchen",
		"On the Phone",
		"The Internet",
		"Adventures",
		"Tourism",
		"Chores",
		"Science",
		"Natural Forces",
	},
}

// subjectOrder fixes the display order; map iteration order is random.
var subjectOrder = []string{
	"Matematik",
	"Türkçe",
	"Fen Bilimleri",
	"T.C. İnkılap Tarihi",
	"Din Kültürü",
	"İngilizce",
}

// Subjects returns all subjects in display order.
func Subjects() []string {
	out := make([]string, len(subjectOrder))
	copy(out, subjectOrder)
	return out
}

// Topics returns the topic list for a subject, empty for unknown subjects.
func Topics(subject string) []string {
	topics, ok := mebCurriculum[subject]
	if !ok {
		return []string{}
	}
	out := make([]string, len(topics))
	copy(out, topics)
	return out
}

// TopicPriority returns the LGS exam priority of a topic (1-5, 5 highest),
// based on historical question frequency. Unknown topics default to 3.
func TopicPriority(subject, topic string) int {
	priorityMap := map[string]map[string]int{
		"Matematik": {
			"Çarpanlar ve Katlar":                  5,
			"Cebirsel İfadeler":                    5,
			"Doğrusal Denklemler ve Eşitsizlikler": 4,
			"Üçgenler":                             4,
			"Veri Analizi ve İstatistik":           3,
		},
		"Türkçe": {
			"Paragrafta Anlam": 5,
			"Sözcükte Anlam":   4,
			"Cümlenin Öğeleri": 4,
			"Söz Sanatları":    3,
		},
	}
	if p, ok := priorityMap[subject][topic]; ok {
		return p
	}
	return 3
}

// LessonContent returns the study text for a topic, or a placeholder when no
// content has been written yet.
func LessonContent(subject, topic string) string {
	if content, ok := lessonContent[subject][topic]; ok {
		return content
	}
	return fmt.Sprintf("**%s** konusu için içerik hazırlanıyor... 📚", topic)
}

var lessonContent = map[string]map[string]string{
	"Matematik": {
		"Çarpanlar ve Katlar": `## 🔢 Çarpanlar ve Katlar

**Çarpan Nedir?**
Bir sayıyı tam olarak bölen sayılara o sayının çarpanı denir.

**Örnek:** 12 sayısının çarpanları
- 12 ÷ 1 = 12 ✅
- 12 ÷ 2 = 6 ✅
- 12 ÷ 3 = 4 ✅
- 12 ÷ 4 = 3 ✅
- 12 ÷ 6 = 2 ✅
- 12 ÷ 12 = 1 ✅

Yani 12'nin çarpanları: 1, 2, 3, 4, 6, 12

**Kat Nedir?**
Bir sayının pozitif tam sayılarla çarpımına o sayının katı denir.

**Örnek:** 3'ün katları
3 × 1 = 3, 3 × 2 = 6, 3 × 3 = 9, 3 × 4 = 12...
Yani 3'ün katları: 3, 6, 9, 12, 15, 18...`,

		"Üslü İfadeler": `## ⚡ Üslü İfadeler

**Üs Nedir?**
Bir sayının kaç kez kendisiyle çarpıldığını gösteren küçük rakam.

**Örnek:** 2⁴ = 2 × 2 × 2 × 2 = 16
- 2: taban
- 4: üs
- 16: değer

**Üslü Sayılarda İşlemler:**
- Çarpma: aᵐ × aⁿ = aᵐ⁺ⁿ
- Bölme: aᵐ ÷ aⁿ = aᵐ⁻ⁿ
- Üssün üssü: (aᵐ)ⁿ = aᵐˣⁿ

**Fenerbahçe Örneği:** ⚽
Fenerbahçe 2² = 4 gol attı, sonra 2³ = 8 gol daha attı.
Toplam: 2² + 2³ = 4 + 8 = 12 gol! 💛💙`,
	},
	"Türkçe": {
		"Sözcükte Anlam": `## 📚 Sözcükte Anlam

**Anlam Türleri:**

**1. Temel Anlam (Gerçek Anlam)**
Sözcüğün sözlükteki ilk anlamı
Örnek: Aslan → Büyük, yeleli vahşi hayvan

**2. Yan Anlam (Mecaz Anlam)**
Sözcüğün benzetme yoluyla kazandığı anlam
Örnek: Aslan → Cesur, güçlü kişi

**3. Çağrışım Anlam**
Sözcüğün zihnimizde uyandırdığı duygular
Örnek: Fenerbahçe → Başarı, tutku, mücadele 💛💙

**Çok Anlamlılık:**
Bir sözcüğün birden fazla anlamı olması
Örnek:
- Yüz: Vücut organı / Sayı
- Saray: Padişah evi / Saha kenarı`,
	},
}
