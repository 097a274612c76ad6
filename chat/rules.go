package chat

import (
	"fmt"
	"regexp"
	"strings"
)

var greetingRe = regexp.MustCompile(`^(halo|hai|hi|hello|hey|pagi|siang|sore|malam)`)

// Rule pairs trigger keywords with a responder. Tables are ordered and
// the first rule with a keyword hit wins; more specific keywords inside a
// responder refine the answer.
type Rule struct {
	Keywords []string
	Respond  func(q string) string
}

// RuleTable answers chat messages by first keyword match. The handler
// takes a table as an argument, so alternate tables can be swapped in.
type RuleTable []Rule

// DefaultRules is the stock study-assistant table.
func DefaultRules() RuleTable {
	return RuleTable{
		{
			Keywords: []string{"terima kasih", "makasih", "thanks"},
			Respond: func(q string) string {
				return "Sama-sama! Senang bisa membantu. Ada lagi yang ingin ditanyakan?"
			},
		},
		{
			Keywords: []string{"matematika", "aljabar", "kalkulus", "limit", "turunan", "integral"},
			Respond: func(q string) string {
				switch {
				case strings.Contains(q, "aljabar"):
					return "**Tips Belajar Aljabar:**\n\n1. Kuasai operasi dasar (+, -, ×, ÷)\n2. Pahami konsep variabel dan konstanta\n3. Latihan persamaan linear\n4. Kerjakan soal bertahap dari mudah ke sulit\n\nAda topik aljabar spesifik yang ingin ditanyakan?"
				case strings.Contains(q, "limit"):
					return "**Konsep Limit Fungsi:**\n\nLimit adalah nilai pendekatan fungsi saat x mendekati nilai tertentu.\n\nRumus dasar: lim x→c f(x) = L\n\nContoh: lim x→2 (x²-4)/(x-2) = 4\n\nAda yang ingin ditanyakan lebih lanjut?"
				case strings.Contains(q, "turunan"):
					return "**Turunan Fungsi:**\n\nTurunan mengukur laju perubahan fungsi.\n\nAturan dasar:\n• f(x) = xⁿ → f'(x) = n·xⁿ⁻¹\n• f(x) = k → f'(x) = 0\n\nContoh: f(x) = 3x² → f'(x) = 6x\n\nMau latihan soal?"
				}
				return "Saya bisa membantu Anda belajar Matematika!\n\nTopik yang tersedia:\n• Aljabar Dasar\n• Persamaan Linear\n• Limit Fungsi\n• Turunan\n• Integral\n\nTopik mana yang ingin dipelajari?"
			},
		},
		{
			Keywords: []string{"fisika", "gerak", "newton", "gaya", "usaha", "energi"},
			Respond: func(q string) string {
				return "**Fisika Dasar:**\n\n• Hukum Newton I, II, III\n• Gerak Lurus Beraturan (GLB)\n• Gerak Lurus Berubah Beraturan (GLBB)\n• Usaha dan Energi\n• Momentum dan Impuls\n\nAda materi spesifik yang ingin didiskusikan?"
			},
		},
		{
			Keywords: []string{"kimia", "stoikiometri", "mol", "reaksi", "ikatan"},
			Respond: func(q string) string {
				return "**Kimia Dasar:**\n\n• Konsep Mol\n• Stoikiometri\n• Persamaan Reaksi\n• Ikatan Kimia\n• Larutan dan Konsentrasi\n\nAda yang ingin ditanyakan?"
			},
		},
		{
			Keywords: []string{"biologi", "sel", "sistem", "pencernaan", "pernapasan"},
			Respond: func(q string) string {
				return "**Biologi:**\n\n• Struktur dan Fungsi Sel\n• Sistem Pencernaan Manusia\n• Sistem Pernapasan\n• Fotosintesis\n• Genetika Dasar\n\nMateri mana yang ingin dipelajari?"
			},
		},
		{
			Keywords: []string{"programming", "coding", "pemrograman", "javascript", "react", "python"},
			Respond: func(q string) string {
				switch {
				case strings.Contains(q, "react"):
					return "**React JS:**\n\nReact adalah library JavaScript untuk membangun user interface.\n\nKonsep dasar:\n• Components\n• Props\n• State\n• Hooks (useState, useEffect)\n• React Router\n\nAda topik React yang ingin ditanyakan?"
				case strings.Contains(q, "javascript"):
					return "**JavaScript:**\n\n• ES6+ (let/const, arrow functions, template literals)\n• Array methods (map, filter, reduce)\n• Async/Await & Promises\n• DOM Manipulation\n• Event Handling\n\nMulai dari mana?"
				case strings.Contains(q, "python"):
					return "**Python:**\n\n• Dasar sintaks\n• Data structures (list, dict, tuple)\n• Functions\n• OOP di Python\n• Library populer (NumPy, Pandas)\n\nAda yang ingin dipelajari?"
				}
				return "Saya bisa membantu belajar pemrograman!\n\nBahasa yang tersedia:\n• JavaScript/React\n• Python\n• HTML/CSS\n• Node.js\n\nMau belajar yang mana?"
			},
		},
		{
			Keywords: []string{"database", "mongodb", "mysql", "sql"},
			Respond: func(q string) string {
				return "**Database:**\n\n• MongoDB (NoSQL)\n• MySQL (Relational)\n• CRUD Operations\n• Indexing\n• Aggregation\n\nAda yang ingin ditanyakan?"
			},
		},
		{
			Keywords: []string{"mobile", "flutter", "react native", "android", "ios"},
			Respond: func(q string) string {
				return "**Mobile Development:**\n\n• Flutter (Dart)\n• React Native (JavaScript)\n• Kotlin (Android Native)\n• Swift (iOS Native)\n\nTertarik dengan platform mana?"
			},
		},
		{
			Keywords: []string{"diskusi", "forum", "question"},
			Respond: func(q string) string {
				return "**Diskusi:**\n\nAnda bisa:\n• Membuat pertanyaan baru\n• Menjawab pertanyaan orang lain\n• Vote upvote/downvote\n• Tag topik dengan kategori\n\nAda yang ingin ditanyakan tentang fitur diskusi?"
			},
		},
		{
			Keywords: []string{"kursus", "course", "belajar"},
			Respond: func(q string) string {
				return "**Kursus di Learnify:**\n\nKami memiliki berbagai kursus:\n• Matematika Dasar & Lanjutan\n• Fisika, Kimia, Biologi\n• Web Development (HTML, CSS, JS, React)\n• Mobile Development (Flutter, React Native)\n• Database (MongoDB, MySQL)\n\nKursus mana yang Anda ambil?"
			},
		},
		{
			Keywords: []string{"learnify", "platform", "tentang"},
			Respond: func(q string) string {
				return "**Tentang Learnify:**\n\nLearnify adalah platform pembelajaran online untuk siswa SMA Kelas 12 dan Mahasiswa.\n\nFitur:\n• Kursus interaktif\n• Diskusi Q&A\n• Progress tracking\n• Sertifikat kelulusan\n• AI Assistant (saya!)\n\nAda yang ingin ditanyakan?"
			},
		},
		{
			Keywords: []string{"bantuan", "help", "fitur"},
			Respond: func(q string) string {
				return "**Bantuan:**\n\nSaya bisa membantu:\n• Materi pelajaran (Matematika, Fisika, Kimia, Biologi)\n• Pemrograman (React, JavaScript, Python)\n• Database (MongoDB, MySQL)\n• Mobile Development\n• Diskusi dan Forum\n• Kursus di Learnify\n\nSilakan tanya apa saja!"
			},
		},
	}
}

// Reply answers a chat message from the table. Greetings are matched on
// the message prefix, everything else on keywords; the default
// introduction is the fallback when nothing matches.
func (rt RuleTable) Reply(message, userName string) string {
	q := strings.ToLower(strings.TrimSpace(message))

	if greetingRe.MatchString(q) {
		name := userName
		if name == "" {
			name = "Siswa"
		}
		return fmt.Sprintf("Halo %s! Ada yang bisa saya bantu seputar pembelajaran?", name)
	}

	for _, r := range rt {
		for _, kw := range r.Keywords {
			if strings.Contains(q, kw) {
				return r.Respond(q)
			}
		}
	}

	return "Halo! Saya asisten AI Learnify.\n\nSaya bisa membantu Anda belajar:\n• Matematika (aljabar, kalkulus, limit, turunan)\n• Fisika, Kimia, Biologi\n• Pemrograman (React, JavaScript, Python)\n• Diskusi dan kursus\n\nAda yang ingin ditanyakan?"
}
