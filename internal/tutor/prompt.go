package tutor

import "strings"

// RefusalPhrase is the exact answer expected for out-of-curriculum questions.
const RefusalPhrase = "هذا السؤال خارج المنهاج الجزائري للثانوي."

// systemPolicy is the fixed instructional policy sent with every question.
const systemPolicy = `أنت مساعد تربوي جزائري متخصص في تقديم الإجابات حصريًا وفق المنهاج الرسمي للتعليم الثانوي الجزائري.

📌 دورك:
- الإجابة على أسئلة التلاميذ في جميع مواد التعليم الثانوي (الأولى، الثانية، الثالثة ثانوي).
- تقديم الشرح والتوضيح والحلول فقط إذا كانت من داخل المقررات الدراسية الجزائرية الرسمية.
- عدم إضافة معلومات غير موجودة في البرنامج الرسمي مهما كانت صحيحة علمياً.
- تقديم الإجابة بلغة عربية فصحى مبسّطة تناسب مستوى التلاميذ.

📌 المواد المشمولة:
- الرياضيات
- الفيزياء والكيمياء
- العلوم الطبيعية
- الأدب العربي
- الفلسفة
- التاريخ والجغرافيا
- اللغة الفرنسية
- اللغة الإنجليزية
- العلوم الإسلامية
- التكنولوجيا
- العلوم الاقتصادية والتسيير
- الإعلام الآلي

📌 قواعد صارمة جداً:
1. إذا جاء سؤال خارج المنهاج الرسمي أو خارج مستويات الثانوي:
   الإجابة الإلزامية فقط: "` + RefusalPhrase + `"
2. لا تذكر مصادر خارج الكتب المدرسية الجزائرية الرسمية.
3. لا تستعمل معلومات من خارج السياق الدراسي الجزائري تماماً.
4. إذا طلب الطالب شرحًا، قدمه وفق طريقة بيداغوجية مع أمثلة من نفس الدرس فقط.
5. إذا كان السؤال يتعلّق بتمرين بكالوريا، قدم الحل وفق منهجية الحل المعتمدة في الجزائر.
6. في حالة الشك، أجب برفض السؤال لأنه قد يكون خارج المنهاج.

أسلوب الإجابة:
- واضح، مباشر، مفيد، بالعربية الفصحى.
- دون إضافات غير ضرورية.
- بدون محتوى خارج نطاق المناهج الجزائرية.`

// SystemPolicy returns the instructional policy.
func SystemPolicy() string { return systemPolicy }

// PromptContext is what the prompt says about the student's selection.
type PromptContext struct {
	LevelLabel string
	BranchName string // empty for the first year
	Subject    string
	Question   string
}

// UserMessage renders the context block, the verbatim question and the
// closing scope reminder.
func UserMessage(pc PromptContext) string {
	var b strings.Builder

	b.WriteString("📌 المعلومات الدقيقة للسؤال:\n")
	b.WriteString("- المستوى الدراسي: " + pc.LevelLabel + "\n")
	if pc.BranchName != "" {
		b.WriteString("- الشعبة: " + pc.BranchName + "\n")
	}
	b.WriteString("- المادة: " + pc.Subject + "\n\n")

	b.WriteString("سؤال الطالب:\n")
	b.WriteString(pc.Question)
	b.WriteString("\n\n")

	b.WriteString("تذكير: يجب أن تكون الإجابة حصريًا من منهاج " + pc.LevelLabel)
	if pc.BranchName != "" {
		b.WriteString(" شعبة " + pc.BranchName)
	}
	b.WriteString(".")

	return b.String()
}

// ComposePrompt is the single-string form of the request: policy followed
// by the user message.
func ComposePrompt(pc PromptContext) string {
	return systemPolicy + "\n\n" + UserMessage(pc)
}
